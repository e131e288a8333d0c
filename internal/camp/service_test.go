package camp

import (
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"

	internal "github.com/hrkit/hr-management/internal"
	"github.com/hrkit/hr-management/internal/transport"
	"github.com/hrkit/hr-management/internal/user"
)

func TestCamp(t *testing.T) {
	gomega.RegisterFailHandler(ginkgo.Fail)
	ginkgo.RunSpecs(t, "Camp Module Suite")
}

type mockRepository struct {
	camps map[string]*Camp
	// every user by id; FindAssignableEmployee applies the staffing rule
	users map[string]*user.User
}

func newMockRepository() *mockRepository {
	return &mockRepository{
		camps: map[string]*Camp{},
		users: map[string]*user.User{},
	}
}

func (m *mockRepository) addUser(role, status string) string {
	id := uuid.NewString()
	m.users[id] = &user.User{
		ID:     id,
		Name:   "Mock " + role,
		Email:  id + "@example.com",
		Role:   role,
		Status: status,
	}
	return id
}

func (m *mockRepository) Create(c *Camp) error {
	cp := *c
	m.camps[c.ID] = &cp
	return nil
}

func (m *mockRepository) GetByID(id string) (*Camp, error) {
	c, ok := m.camps[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (m *mockRepository) FindByName(name string) (*Camp, error) {
	for _, c := range m.camps {
		if c.Name == name {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *mockRepository) Update(c *Camp) error {
	cp := *c
	m.camps[c.ID] = &cp
	return nil
}

func (m *mockRepository) Delete(id string) error {
	delete(m.camps, id)
	return nil
}

func (m *mockRepository) GetAll(limit, offset int) ([]*Camp, int64, error) {
	var all []*Camp
	for _, c := range m.camps {
		all = append(all, c)
	}
	return all, int64(len(all)), nil
}

func (m *mockRepository) GetByEmployee(employeeID string, limit, offset int) ([]*Camp, int64, error) {
	var matched []*Camp
	for _, c := range m.camps {
		if c.EmployeeID != nil && *c.EmployeeID == employeeID {
			matched = append(matched, c)
		}
	}
	return matched, int64(len(matched)), nil
}

func (m *mockRepository) GetByStatus(status string, limit, offset int) ([]*Camp, int64, error) {
	var matched []*Camp
	for _, c := range m.camps {
		if c.Status == status {
			matched = append(matched, c)
		}
	}
	return matched, int64(len(matched)), nil
}

func (m *mockRepository) Search(query string, limit, offset int) ([]*Camp, int64, error) {
	return m.GetAll(limit, offset)
}

func (m *mockRepository) FindAssignableEmployee(employeeID string) (*user.Summary, error) {
	u, ok := m.users[employeeID]
	if !ok || u.Role != user.RoleEmployee || u.Status != user.StatusActive {
		return nil, nil
	}
	return &user.Summary{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}, nil
}

func (m *mockRepository) Stats() (*Stats, error) {
	return &Stats{}, nil
}

var _ = ginkgo.Describe("CampService", func() {
	var (
		service *Service
		repo    *mockRepository
	)

	ginkgo.BeforeEach(func() {
		repo = newMockRepository()
		service = NewService(repo, slog.Default())
	})

	ginkgo.Describe("Create", func() {
		ginkgo.It("creates an unstaffed active camp", func() {
			created, err := service.Create(CreateCampDTO{Name: "North Site"})

			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(created.Status).To(gomega.Equal(StatusActive))
			gomega.Expect(created.EmployeeID).To(gomega.BeNil())
		})

		ginkgo.It("rejects a duplicate name", func() {
			_, err := service.Create(CreateCampDTO{Name: "North Site"})
			gomega.Expect(err).NotTo(gomega.HaveOccurred())

			_, err = service.Create(CreateCampDTO{Name: "North Site"})

			appErr, ok := internal.IsAppError(err)
			gomega.Expect(ok).To(gomega.BeTrue())
			gomega.Expect(appErr.Code).To(gomega.Equal(internal.ErrCodeNameTaken))
			gomega.Expect(appErr.StatusCode).To(gomega.Equal(400))
		})

		ginkgo.It("resolves the assigned employee at creation", func() {
			employeeID := repo.addUser(user.RoleEmployee, user.StatusActive)

			created, err := service.Create(CreateCampDTO{Name: "North Site", EmployeeID: &employeeID})

			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(created.Employee).NotTo(gomega.BeNil())
			gomega.Expect(created.Employee.ID).To(gomega.Equal(employeeID))
		})
	})

	ginkgo.Describe("AssignEmployee", func() {
		var campID string

		ginkgo.BeforeEach(func() {
			created, err := service.Create(CreateCampDTO{Name: "North Site"})
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			campID = created.ID
		})

		ginkgo.It("assigns an active employee", func() {
			employeeID := repo.addUser(user.RoleEmployee, user.StatusActive)

			updated, err := service.AssignEmployee(campID, AssignEmployeeDTO{EmployeeID: employeeID})

			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(*updated.EmployeeID).To(gomega.Equal(employeeID))
			gomega.Expect(updated.Employee.Name).To(gomega.Equal("Mock employee"))
		})

		ginkgo.It("rejects an admin even when active", func() {
			adminID := repo.addUser(user.RoleAdmin, user.StatusActive)

			_, err := service.AssignEmployee(campID, AssignEmployeeDTO{EmployeeID: adminID})

			appErr, ok := internal.IsAppError(err)
			gomega.Expect(ok).To(gomega.BeTrue())
			gomega.Expect(appErr.Code).To(gomega.Equal(internal.ErrCodeEmployeeNotFound))
			gomega.Expect(appErr.Message).To(gomega.Equal("Employee not found or not assignable"))
		})

		ginkgo.It("rejects an inactive employee", func() {
			dormantID := repo.addUser(user.RoleEmployee, user.StatusInactive)

			_, err := service.AssignEmployee(campID, AssignEmployeeDTO{EmployeeID: dormantID})

			appErr, ok := internal.IsAppError(err)
			gomega.Expect(ok).To(gomega.BeTrue())
			gomega.Expect(appErr.Type).To(gomega.Equal(internal.ErrorTypeNotFound))
		})

		ginkgo.It("rejects an unknown employee id", func() {
			_, err := service.AssignEmployee(campID, AssignEmployeeDTO{EmployeeID: uuid.NewString()})

			appErr, ok := internal.IsAppError(err)
			gomega.Expect(ok).To(gomega.BeTrue())
			gomega.Expect(appErr.Code).To(gomega.Equal(internal.ErrCodeEmployeeNotFound))
		})
	})

	ginkgo.Describe("RemoveEmployee", func() {
		ginkgo.It("clears the assignment", func() {
			employeeID := repo.addUser(user.RoleEmployee, user.StatusActive)
			created, err := service.Create(CreateCampDTO{Name: "North Site", EmployeeID: &employeeID})
			gomega.Expect(err).NotTo(gomega.HaveOccurred())

			updated, err := service.RemoveEmployee(created.ID)

			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(updated.EmployeeID).To(gomega.BeNil())
			gomega.Expect(updated.Employee).To(gomega.BeNil())
		})
	})

	ginkgo.Describe("Update", func() {
		ginkgo.It("clears the assignment when id_employee is an empty string", func() {
			employeeID := repo.addUser(user.RoleEmployee, user.StatusActive)
			created, err := service.Create(CreateCampDTO{Name: "North Site", EmployeeID: &employeeID})
			gomega.Expect(err).NotTo(gomega.HaveOccurred())

			empty := ""
			updated, err := service.Update(created.ID, UpdateCampDTO{EmployeeID: &empty})

			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(updated.EmployeeID).To(gomega.BeNil())
		})

		ginkgo.It("re-checks name uniqueness on rename", func() {
			_, err := service.Create(CreateCampDTO{Name: "North Site"})
			gomega.Expect(err).NotTo(gomega.HaveOccurred())

			second, err := service.Create(CreateCampDTO{Name: "South Site"})
			gomega.Expect(err).NotTo(gomega.HaveOccurred())

			name := "North Site"
			_, err = service.Update(second.ID, UpdateCampDTO{Name: &name})

			appErr, ok := internal.IsAppError(err)
			gomega.Expect(ok).To(gomega.BeTrue())
			gomega.Expect(appErr.Code).To(gomega.Equal(internal.ErrCodeNameTaken))
		})
	})

	ginkgo.Describe("Delete", func() {
		ginkgo.It("removes the camp for good", func() {
			created, err := service.Create(CreateCampDTO{Name: "North Site"})
			gomega.Expect(err).NotTo(gomega.HaveOccurred())

			gomega.Expect(service.Delete(created.ID)).To(gomega.Succeed())

			_, err = service.GetByID(created.ID)
			appErr, ok := internal.IsAppError(err)
			gomega.Expect(ok).To(gomega.BeTrue())
			gomega.Expect(appErr.Code).To(gomega.Equal(internal.ErrCodeCampNotFound))

			// the name is immediately reusable, there is no tombstone
			_, err = service.Create(CreateCampDTO{Name: "North Site"})
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
		})
	})

	ginkgo.Describe("ListByStatus", func() {
		ginkgo.It("rejects an unknown status value", func() {
			_, _, err := service.ListByStatus("deleted", transport.PageParams{Page: 1, Limit: 10})

			appErr, ok := internal.IsAppError(err)
			gomega.Expect(ok).To(gomega.BeTrue())
			gomega.Expect(appErr.Code).To(gomega.Equal(internal.ErrCodeInvalidStatus))
		})
	})
})
