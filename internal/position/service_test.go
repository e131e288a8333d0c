package position

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

func TestPosition(t *testing.T) {
	gomega.RegisterFailHandler(ginkgo.Fail)
	ginkgo.RunSpecs(t, "Position Module Suite")
}

type mockRepository struct {
	positions   map[string]*Position
	departments map[string]*DepartmentRef
	// users holding each position, non-deleted only
	holders map[string][]*user.User
}

func newMockRepository() *mockRepository {
	return &mockRepository{
		positions:   map[string]*Position{},
		departments: map[string]*DepartmentRef{},
		holders:     map[string][]*user.User{},
	}
}

func (m *mockRepository) addDepartment(name string) string {
	id := uuid.NewString()
	m.departments[id] = &DepartmentRef{ID: id, Name: name}
	return id
}

func (m *mockRepository) Create(pos *Position) error {
	cp := *pos
	m.positions[pos.ID] = &cp
	return nil
}

func (m *mockRepository) GetByID(id string) (*Position, error) {
	pos, ok := m.positions[id]
	if !ok || pos.Status == StatusDeleted {
		return nil, nil
	}
	cp := *pos
	return &cp, nil
}

func (m *mockRepository) Update(pos *Position) error {
	cp := *pos
	m.positions[pos.ID] = &cp
	return nil
}

func (m *mockRepository) SoftDelete(id string) error {
	if pos, ok := m.positions[id]; ok {
		pos.Status = StatusDeleted
	}
	return nil
}

func (m *mockRepository) GetAll(limit, offset int) ([]*Position, int64, error) {
	var all []*Position
	for _, pos := range m.positions {
		if pos.Status != StatusDeleted {
			all = append(all, pos)
		}
	}
	return all, int64(len(all)), nil
}

func (m *mockRepository) GetByDepartment(departmentID string, limit, offset int) ([]*Position, int64, error) {
	var matched []*Position
	for _, pos := range m.positions {
		if pos.Status != StatusDeleted && pos.DepartmentID == departmentID {
			matched = append(matched, pos)
		}
	}
	return matched, int64(len(matched)), nil
}

func (m *mockRepository) Search(query string, limit, offset int) ([]*Position, int64, error) {
	return m.GetAll(limit, offset)
}

func (m *mockRepository) FindDepartment(departmentID string) (*DepartmentRef, error) {
	if dept, ok := m.departments[departmentID]; ok {
		cp := *dept
		return &cp, nil
	}
	return nil, nil
}

func (m *mockRepository) CountDependentUsers(positionID string) (int64, error) {
	return int64(len(m.holders[positionID])), nil
}

func (m *mockRepository) GetEmployees(positionID string, limit, offset int) ([]*user.User, int64, error) {
	holders := m.holders[positionID]
	return holders, int64(len(holders)), nil
}

var _ = ginkgo.Describe("PositionService", func() {
	var (
		service      *Service
		repo         *mockRepository
		departmentID string
	)

	ginkgo.BeforeEach(func() {
		repo = newMockRepository()
		service = NewService(repo, slog.Default())
		departmentID = repo.addDepartment("Operations")
	})

	ginkgo.Describe("Create", func() {
		ginkgo.It("creates an active position bound to its department", func() {
			salary := 42000.0
			created, err := service.Create(CreatePositionDTO{
				Name:         "Site Worker",
				DepartmentID: departmentID,
				BaseSalary:   &salary,
			})

			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(created.Status).To(gomega.Equal(StatusActive))
			gomega.Expect(created.BaseSalary).To(gomega.Equal(42000.0))
			gomega.Expect(created.Department).NotTo(gomega.BeNil())
			gomega.Expect(created.Department.Name).To(gomega.Equal("Operations"))
		})

		ginkgo.It("rejects an unknown department as 404", func() {
			_, err := service.Create(CreatePositionDTO{
				Name:         "Site Worker",
				DepartmentID: uuid.NewString(),
			})

			appErr, ok := internal.IsAppError(err)
			gomega.Expect(ok).To(gomega.BeTrue())
			gomega.Expect(appErr.Code).To(gomega.Equal(internal.ErrCodeDepartmentNotFound))
			gomega.Expect(appErr.StatusCode).To(gomega.Equal(404))
		})

		ginkgo.It("rejects a negative base salary", func() {
			salary := -100.0
			_, err := service.Create(CreatePositionDTO{
				Name:         "Site Worker",
				DepartmentID: departmentID,
				BaseSalary:   &salary,
			})

			appErr, ok := internal.IsAppError(err)
			gomega.Expect(ok).To(gomega.BeTrue())
			gomega.Expect(appErr.Type).To(gomega.Equal(internal.ErrorTypeValidation))
		})
	})

	ginkgo.Describe("Update", func() {
		ginkgo.It("re-resolves the department when it changes", func() {
			created, err := service.Create(CreatePositionDTO{Name: "Site Worker", DepartmentID: departmentID})
			gomega.Expect(err).NotTo(gomega.HaveOccurred())

			otherID := repo.addDepartment("Logistics")
			updated, err := service.Update(created.ID, UpdatePositionDTO{DepartmentID: &otherID})

			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(updated.DepartmentID).To(gomega.Equal(otherID))
			gomega.Expect(updated.Department.Name).To(gomega.Equal("Logistics"))
		})

		ginkgo.It("rejects a move to an unknown department", func() {
			created, err := service.Create(CreatePositionDTO{Name: "Site Worker", DepartmentID: departmentID})
			gomega.Expect(err).NotTo(gomega.HaveOccurred())

			unknown := uuid.NewString()
			_, err = service.Update(created.ID, UpdatePositionDTO{DepartmentID: &unknown})

			appErr, ok := internal.IsAppError(err)
			gomega.Expect(ok).To(gomega.BeTrue())
			gomega.Expect(appErr.Code).To(gomega.Equal(internal.ErrCodeDepartmentNotFound))
		})
	})

	ginkgo.Describe("Delete", func() {
		ginkgo.It("refuses while employees still hold the position", func() {
			created, err := service.Create(CreatePositionDTO{Name: "Site Worker", DepartmentID: departmentID})
			gomega.Expect(err).NotTo(gomega.HaveOccurred())

			repo.holders[created.ID] = []*user.User{
				{ID: uuid.NewString(), Name: "Jane Worker", Role: user.RoleEmployee, Status: user.StatusActive},
			}

			err = service.Delete(created.ID)

			appErr, ok := internal.IsAppError(err)
			gomega.Expect(ok).To(gomega.BeTrue())
			gomega.Expect(appErr.Code).To(gomega.Equal(internal.ErrCodePositionInUse))
			gomega.Expect(appErr.StatusCode).To(gomega.Equal(400))
		})

		ginkgo.It("soft-deletes once no one holds it", func() {
			created, err := service.Create(CreatePositionDTO{Name: "Site Worker", DepartmentID: departmentID})
			gomega.Expect(err).NotTo(gomega.HaveOccurred())

			gomega.Expect(service.Delete(created.ID)).To(gomega.Succeed())

			_, err = service.GetByID(created.ID)
			appErr, ok := internal.IsAppError(err)
			gomega.Expect(ok).To(gomega.BeTrue())
			gomega.Expect(appErr.Code).To(gomega.Equal(internal.ErrCodePositionNotFound))
		})
	})

	ginkgo.Describe("ListByDepartment", func() {
		ginkgo.It("distinguishes an unknown department from an empty one", func() {
			_, _, err := service.ListByDepartment(uuid.NewString(), transport.PageParams{Page: 1, Limit: 10})

			appErr, ok := internal.IsAppError(err)
			gomega.Expect(ok).To(gomega.BeTrue())
			gomega.Expect(appErr.Code).To(gomega.Equal(internal.ErrCodeDepartmentNotFound))

			positions, pagination, err := service.ListByDepartment(departmentID, transport.PageParams{Page: 1, Limit: 10})
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(positions).To(gomega.BeEmpty())
			gomega.Expect(pagination.Total).To(gomega.BeZero())
		})
	})

	ginkgo.Describe("Employees", func() {
		ginkgo.It("returns public projections of the holders", func() {
			created, err := service.Create(CreatePositionDTO{Name: "Site Worker", DepartmentID: departmentID})
			gomega.Expect(err).NotTo(gomega.HaveOccurred())

			repo.holders[created.ID] = []*user.User{
				{ID: uuid.NewString(), Name: "Jane Worker", Email: "jane@example.com", Password: "hash", Role: user.RoleEmployee, Status: user.StatusActive},
			}

			employees, pagination, err := service.Employees(created.ID, transport.PageParams{Page: 1, Limit: 10})

			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(pagination.Total).To(gomega.Equal(int64(1)))
			gomega.Expect(employees).To(gomega.HaveLen(1))
			gomega.Expect(employees[0].Name).To(gomega.Equal("Jane Worker"))
		})
	})
})
