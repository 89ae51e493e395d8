package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"orghierarchy/src/domain"
)

// SyncEmployees lets the employee-management collaborator push its records
// without going through Kafka. Same upsert path as the consumer.
func (s *Server) SyncEmployees(w http.ResponseWriter, r *http.Request) {
	owner := r.PathValue("owner")
	if owner == "" {
		http.Error(w, "owner is required", http.StatusBadRequest)
		return
	}

	var request EmployeeSyncRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	if len(request.Employees) == 0 {
		http.Error(w, "employees must be a non-empty array", http.StatusBadRequest)
		return
	}

	employees := make([]domain.EmployeeInput, 0, len(request.Employees))
	for _, employee := range request.Employees {
		if employee.ID == "" || employee.Name == "" {
			http.Error(w, "every employee needs an id and a name", http.StatusBadRequest)
			return
		}
		employees = append(employees, domain.EmployeeInput{ID: employee.ID, Name: employee.Name})
	}

	if err := s.employeeRepository.Upsert(r.Context(), owner, employees); err != nil {
		s.logger.Error("Failed to sync employees", "owner", owner, "count", len(employees), "error", err)
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{
			Code:    "INTERNAL",
			Message: domain.ErrUnavailableServer.Error(),
		})
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	fmt.Fprintln(w, `{"status": "employees synced"}`)
}
