package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"time"

	"orghierarchy/src/domain"
	"orghierarchy/src/domain/entities"
	"orghierarchy/src/helper/env"
	"orghierarchy/src/infra/kafka"
	"orghierarchy/src/infra/postgres"
	"orghierarchy/src/infra/redis"
	"orghierarchy/src/repositories"
	"orghierarchy/src/services/hierarchy"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
)

// Gera tenants de exemplo: funcionários fake e um DAG aleatório de vínculos,
// tudo passando pelo caminho normal de validação do serviço.

var relations = []string{
	entities.RelationManager,
	entities.RelationManager,
	entities.RelationTeamLead,
	entities.RelationMentor,
	entities.RelationOther,
}

func main() {
	numOwners := flag.Int("owners", 1, "Número de tenants a criar")
	numEmployees := flag.Int("employees", 50, "Funcionários por tenant")
	viaKafka := flag.Bool("via-kafka", false, "Publica os funcionários no tópico do consumer em vez de gravar direto")
	flag.Parse()

	ctx := context.Background()

	readWriteClient, err := newReadWriteClient()
	if err != nil {
		log.Fatalf("Failed to connect: %v", err)
	}
	defer readWriteClient.GetReadPool().Close()
	defer readWriteClient.GetWritePool().Close()

	redisClient := newRedisClient()

	employeeRepository := repositories.NewEmployeeRepository(readWriteClient.GetWritePool())
	hierarchyQueryRepository := repositories.NewHierarchyQueryRepository(readWriteClient.GetReadPool())
	cachedHierarchyRepository := repositories.NewCachedHierarchyRepository(hierarchyQueryRepository, redisClient)
	hierarchyWriteRepository := repositories.NewHierarchyWriteRepository(readWriteClient.GetWritePool(), cachedHierarchyRepository)
	hierarchyService := hierarchy.NewHierarchyService(hierarchyQueryRepository, cachedHierarchyRepository, hierarchyWriteRepository, employeeRepository)

	var kafkaClient *kafka.KafkaClient
	if *viaKafka {
		kafkaClient, err = kafka.NewKafkaClient(env.MustGetString("KAFKA_BROKERS"), "seed", 100)
		if err != nil {
			log.Fatalf("Failed to create kafka client: %v", err)
		}
		defer kafkaClient.Close()
	}

	for o := 0; o < *numOwners; o++ {
		owner := uuid.NewString()

		employees := make([]domain.EmployeeInput, 0, *numEmployees)
		for i := 0; i < *numEmployees; i++ {
			employees = append(employees, domain.EmployeeInput{
				ID:   uuid.NewString(),
				Name: gofakeit.Name(),
			})
		}

		if *viaKafka {
			if err := publishEmployees(kafkaClient, owner, employees); err != nil {
				log.Fatalf("Failed to publish employees for owner %s: %v", owner, err)
			}
			// Dá tempo do consumer materializar antes de criar vínculos.
			time.Sleep(2 * time.Second)
		} else {
			if err := employeeRepository.Upsert(ctx, owner, employees); err != nil {
				log.Fatalf("Failed to upsert employees for owner %s: %v", owner, err)
			}
		}

		created := seedEdges(ctx, hierarchyService, owner, employees)
		fmt.Printf("Owner %s: %d employees, %d edges\n", owner, len(employees), created)
	}
}

// seedEdges liga cada funcionário (menos os primeiros, que viram raízes) a um
// senior sorteado entre os anteriores. Sorteio sobre índices menores garante
// um DAG, então nenhuma criação deve ser rejeitada.
func seedEdges(ctx context.Context, hierarchyService *hierarchy.HierarchyService, owner string, employees []domain.EmployeeInput) int {
	roots := 1 + len(employees)/25
	created := 0

	for i := roots; i < len(employees); i++ {
		senior := employees[rand.Intn(i)]
		_, err := hierarchyService.CreateRelationship(ctx, owner, domain.RelationshipInput{
			SeniorID: senior.ID,
			JuniorID: employees[i].ID,
			Relation: relations[rand.Intn(len(relations))],
		})
		if err != nil {
			log.Printf("Skipping edge %s -> %s: %v", senior.ID, employees[i].ID, err)
			continue
		}
		created++
	}

	return created
}

func publishEmployees(kafkaClient *kafka.KafkaClient, owner string, employees []domain.EmployeeInput) error {
	topic := env.GetString("KAFKA_EMPLOYEE_SYNC_CONSUMER_TOPIC", "hr.employees")

	messages := make([]kafka.Message, 0, len(employees))
	for _, employee := range employees {
		value, err := json.Marshal(map[string]string{
			"owner": owner,
			"id":    employee.ID,
			"name":  employee.Name,
		})
		if err != nil {
			return err
		}
		messages = append(messages, kafka.Message{Key: employee.ID, Value: value})
	}

	return kafkaClient.Producer(messages, topic)
}

func newReadWriteClient() (*postgres.ReadWriteClient, error) {
	dbReadHost := env.MustGetString("DB_READ_HOST")
	dbWriteHost := env.MustGetString("DB_WRITE_HOST")
	dbReadPort := env.GetString("DB_READ_PORT", "5432")
	dbWritePort := env.GetString("DB_WRITE_PORT", "5432")
	dbname := env.MustGetString("DB_NAME")
	dbUser := env.MustGetString("DB_USER")
	dbPassword := env.MustGetString("DB_PASSWORD")
	maxConnections := env.GetInt("DB_MAX_POOL_CONNECTIONS", 25)

	return postgres.NewReadWriteClient(dbReadHost, dbWriteHost, dbReadPort, dbWritePort, dbname, dbUser, dbPassword, maxConnections)
}

func newRedisClient() *redis.RedisClient {
	redisHosts := env.GetString("REDIS_HOSTS", "")
	if redisHosts == "" {
		return nil
	}

	redisPoolSize := env.GetInt("REDIS_POOL_SIZE", 10)
	redisDefaultTTLSeconds := env.GetInt("REDIS_DEFAULT_TTL_SECONDS", 120)

	return redis.NewRedisClient(redisHosts, redisPoolSize, time.Duration(redisDefaultTTLSeconds)*time.Second)
}
