package entities

import (
	"time"
)

// É o "nó" do grafo. Employees are owned by an external employee-management
// collaborator; this service only stores the reference it needs for existence
// checks and forest labeling.
type Employee struct {
	ID        string    `json:"id"`
	Owner     string    `json:"owner"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
