package stubs

import (
	"time"

	"orghierarchy/src/domain/entities"

	"github.com/brianvoe/gofakeit/v6"
)

type EdgeStub struct {
	edge entities.HierarchyEdge
}

func NewEdgeStub() EdgeStub {
	now := time.Now().UTC()

	seniorID := gofakeit.UUID()

	edge := entities.HierarchyEdge{
		ID:             gofakeit.Int64(),
		Owner:          gofakeit.UUID(),
		SeniorID:       seniorID,
		JuniorID:       gofakeit.UUID(),
		Relation:       entities.RelationManager,
		HierarchyLevel: 1,
		Path:           seniorID,
		RootManager:    seniorID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	return EdgeStub{edge: edge}
}

func (es EdgeStub) WithOwner(owner string) EdgeStub {
	es.edge.Owner = owner
	return es
}

func (es EdgeStub) WithSeniorID(seniorID string) EdgeStub {
	es.edge.SeniorID = seniorID
	return es
}

func (es EdgeStub) WithJuniorID(juniorID string) EdgeStub {
	es.edge.JuniorID = juniorID
	return es
}

func (es EdgeStub) WithRelation(relation string) EdgeStub {
	es.edge.Relation = relation
	return es
}

func (es EdgeStub) WithAncestry(hierarchyLevel int, path string, rootManager string) EdgeStub {
	es.edge.HierarchyLevel = hierarchyLevel
	es.edge.Path = path
	es.edge.RootManager = rootManager
	return es
}

func (es EdgeStub) Get() entities.HierarchyEdge {
	return es.edge
}
