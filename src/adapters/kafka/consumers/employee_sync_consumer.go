package consumers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"orghierarchy/src/domain"
	"orghierarchy/src/infra/kafka"
	"orghierarchy/src/repositories"
)

// KafkaEmployeeMessage representa o schema da mensagem Kafka emitida pelo
// sistema de gestão de funcionários.
type KafkaEmployeeMessage struct {
	Owner string `json:"owner"`
	ID    string `json:"id"`
	Name  string `json:"name"`
}

type EmployeeSyncConsumer struct {
	logger             *slog.Logger
	employeeRepository *repositories.EmployeeRepository
}

func NewEmployeeSyncConsumer(
	logger *slog.Logger,
	employeeRepository *repositories.EmployeeRepository,
) *EmployeeSyncConsumer {
	return &EmployeeSyncConsumer{
		logger:             logger,
		employeeRepository: employeeRepository,
	}
}

func (c *EmployeeSyncConsumer) Start(ctx context.Context, kafkaClient *kafka.KafkaClient, topic string) error {
	c.logger.Info("Starting employee sync consumer", "topic", topic)

	handler := func(messages []kafka.Message) error {
		return c.handleMessages(ctx, messages)
	}

	return kafkaClient.Consumer(ctx, handler, topic)
}

func (c *EmployeeSyncConsumer) handleMessages(ctx context.Context, messages []kafka.Message) error {
	if len(messages) == 0 {
		return nil
	}

	c.logger.Info("Processing messages batch", "count", len(messages))

	// Group by owner; the repository upsert is tenant-scoped. The last
	// occurrence of an id in the batch wins.
	byOwner := make(map[string]map[string]domain.EmployeeInput)

	for _, msg := range messages {
		var employeeMessage KafkaEmployeeMessage
		if err := json.Unmarshal(msg.Value, &employeeMessage); err != nil {
			c.logger.Error("Failed to unmarshal message",
				"error", err,
				"key", msg.Key,
				"value", string(msg.Value))
			return fmt.Errorf("failed to unmarshal message with key %s: %w", msg.Key, err)
		}

		if employeeMessage.Owner == "" || employeeMessage.ID == "" || employeeMessage.Name == "" {
			c.logger.Error("Invalid message: missing required fields",
				"key", msg.Key,
				"owner", employeeMessage.Owner,
				"id", employeeMessage.ID)
			return fmt.Errorf("invalid message with key %s: owner, id and name are required", msg.Key)
		}

		if byOwner[employeeMessage.Owner] == nil {
			byOwner[employeeMessage.Owner] = make(map[string]domain.EmployeeInput)
		}
		byOwner[employeeMessage.Owner][employeeMessage.ID] = domain.EmployeeInput{
			ID:   employeeMessage.ID,
			Name: employeeMessage.Name,
		}
	}

	for owner, employeesByID := range byOwner {
		employees := make([]domain.EmployeeInput, 0, len(employeesByID))
		for _, employee := range employeesByID {
			employees = append(employees, employee)
		}

		if err := c.employeeRepository.Upsert(ctx, owner, employees); err != nil {
			c.logger.Error("Failed to upsert employees",
				"error", err,
				"owner", owner,
				"count", len(employees))
			return fmt.Errorf("failed to upsert employees for owner %s: %w", owner, err)
		}

		c.logger.Info("Employees synced", "owner", owner, "count", len(employees))
	}

	return nil
}
