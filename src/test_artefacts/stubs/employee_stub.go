package stubs

import (
	"time"

	"orghierarchy/src/domain/entities"

	"github.com/brianvoe/gofakeit/v6"
)

type EmployeeStub struct {
	employee entities.Employee
}

func NewEmployeeStub() EmployeeStub {
	now := time.Now().UTC()

	employee := entities.Employee{
		ID:        gofakeit.UUID(),
		Owner:     gofakeit.UUID(),
		Name:      gofakeit.Name(),
		CreatedAt: now,
		UpdatedAt: now,
	}

	return EmployeeStub{employee: employee}
}

func (es EmployeeStub) WithID(id string) EmployeeStub {
	es.employee.ID = id
	return es
}

func (es EmployeeStub) WithOwner(owner string) EmployeeStub {
	es.employee.Owner = owner
	return es
}

func (es EmployeeStub) WithName(name string) EmployeeStub {
	es.employee.Name = name
	return es
}

func (es EmployeeStub) Get() entities.Employee {
	return es.employee
}
