package hierarchy_test

import (
	"context"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"orghierarchy/src/domain"
	"orghierarchy/src/domain/entities"
	"orghierarchy/src/helper/env"
	"orghierarchy/src/infra/postgres"
	"orghierarchy/src/repositories"
	"orghierarchy/src/services/hierarchy"
	"orghierarchy/src/test_artefacts/comparer"
	"orghierarchy/src/test_artefacts/stubs"
	"orghierarchy/src/test_artefacts/test_seeder"
)

var _ = Describe("CreateRelationship", func() {
	var (
		readWriteClient           *postgres.ReadWriteClient
		seeder                    test_seeder.TestSeeder
		hierarchyService          *hierarchy.HierarchyService
		hierarchyQueryRepository  *repositories.HierarchyQueryRepository
		cachedHierarchyRepository *repositories.CachedHierarchyRepository
		hierarchyWriteRepository  *repositories.HierarchyWriteRepository
		employeeRepository        *repositories.EmployeeRepository
		ctx                       context.Context
		err                       error
	)

	dbReadHost := env.MustGetString("TEST_DB_READ_HOST")
	dbWriteHost := env.MustGetString("TEST_DB_WRITE_HOST")
	dbReadPort := env.GetString("TEST_DB_READ_PORT", "5432")
	dbWritePort := env.GetString("TEST_DB_WRITE_PORT", "5432")
	dbname := env.MustGetString("TEST_DB_NAME")
	dbUser := env.MustGetString("TEST_DB_USER")
	dbPassword := env.MustGetString("TEST_DB_PASSWORD")
	maxConnections := env.GetInt("TEST_DB_MAX_POOL_CONNECTIONS", 25)

	BeforeEach(func() {
		ctx = context.Background()

		// Conexão com o banco de teste
		readWriteClient, err = postgres.NewReadWriteClient(dbReadHost, dbWriteHost, dbReadPort, dbWritePort, dbname, dbUser, dbPassword, maxConnections)
		if err != nil {
			panic(err)
		}

		// Setup dos componentes
		hierarchyQueryRepository = repositories.NewHierarchyQueryRepository(readWriteClient.GetReadPool())
		cachedHierarchyRepository = repositories.NewCachedHierarchyRepository(hierarchyQueryRepository, nil)
		hierarchyWriteRepository = repositories.NewHierarchyWriteRepository(readWriteClient.GetWritePool(), nil)
		employeeRepository = repositories.NewEmployeeRepository(readWriteClient.GetWritePool())
		hierarchyService = hierarchy.NewHierarchyService(hierarchyQueryRepository, cachedHierarchyRepository, hierarchyWriteRepository, employeeRepository)
		seeder = test_seeder.New(readWriteClient.GetWritePool())

		// Limpar dados
		seeder.TruncateTables(ctx)
	})

	AfterEach(func() {
		if readWriteClient.GetReadPool() != nil {
			readWriteClient.GetReadPool().Close()
		}

		if readWriteClient.GetWritePool() != nil {
			readWriteClient.GetWritePool().Close()
		}
	})

	Context("Root relationship", func() {
		When("linking two employees with no existing edges", func() {
			It("should persist the edge with root-level metadata", func() {
				// ARRANGE
				owner := stubs.NewEmployeeStub().Get().Owner
				senior := stubs.NewEmployeeStub().WithOwner(owner).Get()
				junior := stubs.NewEmployeeStub().WithOwner(owner).Get()
				seeder.InsertEmployee(ctx, &senior)
				seeder.InsertEmployee(ctx, &junior)

				expected := entities.HierarchyEdge{
					Owner:          owner,
					SeniorID:       senior.ID,
					JuniorID:       junior.ID,
					Relation:       entities.RelationManager,
					HierarchyLevel: 1,
					Path:           senior.ID,
					RootManager:    senior.ID,
					CreatedAt:      time.Now(),
					UpdatedAt:      time.Now(),
				}

				// ACT
				result, err := hierarchyService.CreateRelationship(ctx, owner, domain.RelationshipInput{
					SeniorID: senior.ID,
					JuniorID: junior.ID,
					Relation: entities.RelationManager,
				})

				// ASSERT
				Expect(err).NotTo(HaveOccurred())
				Expect(result).To(BeComparableTo(
					expected,
					comparer.TimeWithinTolerance(2000),
					comparer.IgnoreFieldsFor[entities.HierarchyEdge]("ID"),
				))

				stored, err := seeder.SelectEdgesByOwner(ctx, owner)
				Expect(err).NotTo(HaveOccurred())
				Expect(stored).To(HaveLen(1))
				Expect(stored[0]).To(BeComparableTo(result, comparer.TimeWithinTolerance(2000)))
			})
		})

		When("omitting the relation label", func() {
			It("should default the relation to Manager", func() {
				// ARRANGE
				owner := stubs.NewEmployeeStub().Get().Owner
				senior := stubs.NewEmployeeStub().WithOwner(owner).Get()
				junior := stubs.NewEmployeeStub().WithOwner(owner).Get()
				seeder.InsertEmployee(ctx, &senior)
				seeder.InsertEmployee(ctx, &junior)

				// ACT
				result, err := hierarchyService.CreateRelationship(ctx, owner, domain.RelationshipInput{
					SeniorID: senior.ID,
					JuniorID: junior.ID,
				})

				// ASSERT
				Expect(err).NotTo(HaveOccurred())
				Expect(result.Relation).To(Equal(entities.RelationManager))
			})
		})

		When("using a relation label outside the closed set", func() {
			It("should return the invalid relation error and persist nothing", func() {
				// ARRANGE
				owner := stubs.NewEmployeeStub().Get().Owner
				senior := stubs.NewEmployeeStub().WithOwner(owner).Get()
				junior := stubs.NewEmployeeStub().WithOwner(owner).Get()
				seeder.InsertEmployee(ctx, &senior)
				seeder.InsertEmployee(ctx, &junior)

				// ACT
				_, err := hierarchyService.CreateRelationship(ctx, owner, domain.RelationshipInput{
					SeniorID: senior.ID,
					JuniorID: junior.ID,
					Relation: "Godparent",
				})

				// ASSERT
				Expect(err).To(MatchError(domain.ErrInvalidRelation))

				stored, err := seeder.SelectEdgesByOwner(ctx, owner)
				Expect(err).NotTo(HaveOccurred())
				Expect(stored).To(BeEmpty())
			})
		})
	})

	Context("Chained relationships", func() {
		When("the senior already reports to someone", func() {
			It("should derive level, path and root manager from the senior's edge", func() {
				// ARRANGE
				owner := stubs.NewEmployeeStub().Get().Owner
				top := stubs.NewEmployeeStub().WithOwner(owner).Get()
				middle := stubs.NewEmployeeStub().WithOwner(owner).Get()
				bottom := stubs.NewEmployeeStub().WithOwner(owner).Get()
				seeder.InsertEmployee(ctx, &top)
				seeder.InsertEmployee(ctx, &middle)
				seeder.InsertEmployee(ctx, &bottom)

				_, err := hierarchyService.CreateRelationship(ctx, owner, domain.RelationshipInput{SeniorID: top.ID, JuniorID: middle.ID})
				Expect(err).NotTo(HaveOccurred())

				// ACT
				result, err := hierarchyService.CreateRelationship(ctx, owner, domain.RelationshipInput{SeniorID: middle.ID, JuniorID: bottom.ID})

				// ASSERT
				Expect(err).NotTo(HaveOccurred())
				Expect(result.HierarchyLevel).To(Equal(2))
				Expect(result.Path).To(Equal(top.ID + "." + middle.ID))
				Expect(result.RootManager).To(Equal(top.ID))
			})
		})

		When("three edges chain down from the same root", func() {
			It("should keep extending the path and carrying the root manager", func() {
				// ARRANGE
				owner := stubs.NewEmployeeStub().Get().Owner
				a := stubs.NewEmployeeStub().WithOwner(owner).Get()
				b := stubs.NewEmployeeStub().WithOwner(owner).Get()
				c := stubs.NewEmployeeStub().WithOwner(owner).Get()
				d := stubs.NewEmployeeStub().WithOwner(owner).Get()
				seeder.InsertEmployee(ctx, &a)
				seeder.InsertEmployee(ctx, &b)
				seeder.InsertEmployee(ctx, &c)
				seeder.InsertEmployee(ctx, &d)

				_, err := hierarchyService.CreateRelationship(ctx, owner, domain.RelationshipInput{SeniorID: a.ID, JuniorID: b.ID})
				Expect(err).NotTo(HaveOccurred())
				_, err = hierarchyService.CreateRelationship(ctx, owner, domain.RelationshipInput{SeniorID: b.ID, JuniorID: c.ID})
				Expect(err).NotTo(HaveOccurred())

				// ACT
				result, err := hierarchyService.CreateRelationship(ctx, owner, domain.RelationshipInput{SeniorID: c.ID, JuniorID: d.ID})

				// ASSERT
				Expect(err).NotTo(HaveOccurred())
				Expect(result.HierarchyLevel).To(Equal(3))
				Expect(result.Path).To(Equal(a.ID + "." + b.ID + "." + c.ID))
				Expect(result.RootManager).To(Equal(a.ID))
			})
		})
	})

	Context("Structural validation", func() {
		When("one of the ids is missing", func() {
			It("should return the missing fields error", func() {
				// ARRANGE
				owner := stubs.NewEmployeeStub().Get().Owner

				// ACT
				_, err := hierarchyService.CreateRelationship(ctx, owner, domain.RelationshipInput{SeniorID: "", JuniorID: "someone"})

				// ASSERT
				Expect(err).To(MatchError(domain.ErrMissingFields))
			})
		})

		When("one of the employees does not exist for the tenant", func() {
			It("should return the not found error", func() {
				// ARRANGE
				owner := stubs.NewEmployeeStub().Get().Owner
				senior := stubs.NewEmployeeStub().WithOwner(owner).Get()
				seeder.InsertEmployee(ctx, &senior)

				// ACT
				_, err := hierarchyService.CreateRelationship(ctx, owner, domain.RelationshipInput{SeniorID: senior.ID, JuniorID: "ghost"})

				// ASSERT
				Expect(err).To(MatchError(domain.ErrEmployeeNotFound))
			})
		})

		When("the senior and junior are the same employee", func() {
			It("should return the self relationship error", func() {
				// ARRANGE
				owner := stubs.NewEmployeeStub().Get().Owner
				employee := stubs.NewEmployeeStub().WithOwner(owner).Get()
				seeder.InsertEmployee(ctx, &employee)

				// ACT
				_, err := hierarchyService.CreateRelationship(ctx, owner, domain.RelationshipInput{SeniorID: employee.ID, JuniorID: employee.ID})

				// ASSERT
				Expect(err).To(MatchError(domain.ErrSelfRelationship))
			})
		})

		When("the same edge is created twice", func() {
			It("should return the duplicate error and keep exactly one row", func() {
				// ARRANGE
				owner := stubs.NewEmployeeStub().Get().Owner
				senior := stubs.NewEmployeeStub().WithOwner(owner).Get()
				junior := stubs.NewEmployeeStub().WithOwner(owner).Get()
				seeder.InsertEmployee(ctx, &senior)
				seeder.InsertEmployee(ctx, &junior)

				_, err := hierarchyService.CreateRelationship(ctx, owner, domain.RelationshipInput{SeniorID: senior.ID, JuniorID: junior.ID})
				Expect(err).NotTo(HaveOccurred())

				// ACT
				_, err = hierarchyService.CreateRelationship(ctx, owner, domain.RelationshipInput{SeniorID: senior.ID, JuniorID: junior.ID})

				// ASSERT
				Expect(err).To(MatchError(domain.ErrDuplicateRelationship))

				count, err := seeder.CountEdges(ctx, owner, senior.ID, junior.ID)
				Expect(err).NotTo(HaveOccurred())
				Expect(count).To(Equal(1))
			})
		})
	})

	Context("Cycle prevention", func() {
		When("reversing an existing edge", func() {
			It("should return the circular reference error and leave the store unchanged", func() {
				// ARRANGE
				owner := stubs.NewEmployeeStub().Get().Owner
				senior := stubs.NewEmployeeStub().WithOwner(owner).Get()
				junior := stubs.NewEmployeeStub().WithOwner(owner).Get()
				seeder.InsertEmployee(ctx, &senior)
				seeder.InsertEmployee(ctx, &junior)

				_, err := hierarchyService.CreateRelationship(ctx, owner, domain.RelationshipInput{SeniorID: senior.ID, JuniorID: junior.ID})
				Expect(err).NotTo(HaveOccurred())

				// ACT
				_, err = hierarchyService.CreateRelationship(ctx, owner, domain.RelationshipInput{SeniorID: junior.ID, JuniorID: senior.ID})

				// ASSERT
				Expect(err).To(MatchError(domain.ErrCircularReference))

				stored, err := seeder.SelectEdgesByOwner(ctx, owner)
				Expect(err).NotTo(HaveOccurred())
				Expect(stored).To(HaveLen(1))
			})
		})

		When("closing a transitive loop", func() {
			It("should return the circular reference error", func() {
				// ARRANGE
				owner := stubs.NewEmployeeStub().Get().Owner
				a := stubs.NewEmployeeStub().WithOwner(owner).Get()
				b := stubs.NewEmployeeStub().WithOwner(owner).Get()
				c := stubs.NewEmployeeStub().WithOwner(owner).Get()
				seeder.InsertEmployee(ctx, &a)
				seeder.InsertEmployee(ctx, &b)
				seeder.InsertEmployee(ctx, &c)

				_, err := hierarchyService.CreateRelationship(ctx, owner, domain.RelationshipInput{SeniorID: a.ID, JuniorID: b.ID})
				Expect(err).NotTo(HaveOccurred())
				_, err = hierarchyService.CreateRelationship(ctx, owner, domain.RelationshipInput{SeniorID: b.ID, JuniorID: c.ID})
				Expect(err).NotTo(HaveOccurred())

				// ACT
				_, err = hierarchyService.CreateRelationship(ctx, owner, domain.RelationshipInput{SeniorID: c.ID, JuniorID: a.ID})

				// ASSERT
				Expect(err).To(MatchError(domain.ErrCircularReference))

				stored, err := seeder.SelectEdgesByOwner(ctx, owner)
				Expect(err).NotTo(HaveOccurred())
				Expect(stored).To(HaveLen(2))
			})
		})

		When("the same pair is reversed in a different tenant", func() {
			It("should accept the edge because tenants never share state", func() {
				// ARRANGE
				tenant1 := stubs.NewEmployeeStub().Get().Owner
				tenant2 := stubs.NewEmployeeStub().Get().Owner

				first := stubs.NewEmployeeStub().WithOwner(tenant1).Get()
				second := stubs.NewEmployeeStub().WithOwner(tenant1).Get()
				seeder.InsertEmployee(ctx, &first)
				seeder.InsertEmployee(ctx, &second)

				// Mesmos ids no outro tenant
				firstMirror := stubs.NewEmployeeStub().WithOwner(tenant2).WithID(first.ID).Get()
				secondMirror := stubs.NewEmployeeStub().WithOwner(tenant2).WithID(second.ID).Get()
				seeder.InsertEmployee(ctx, &firstMirror)
				seeder.InsertEmployee(ctx, &secondMirror)

				_, err := hierarchyService.CreateRelationship(ctx, tenant1, domain.RelationshipInput{SeniorID: first.ID, JuniorID: second.ID})
				Expect(err).NotTo(HaveOccurred())

				// ACT
				result, err := hierarchyService.CreateRelationship(ctx, tenant2, domain.RelationshipInput{SeniorID: second.ID, JuniorID: first.ID})

				// ASSERT
				Expect(err).NotTo(HaveOccurred())
				Expect(result.HierarchyLevel).To(Equal(1))
				Expect(result.RootManager).To(Equal(second.ID))
			})
		})
	})
})
