package department

import (
	"log/slog"
	"testing"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"

	internal "github.com/hrkit/hr-management/internal"
	"github.com/hrkit/hr-management/internal/transport"
)

func TestDepartment(t *testing.T) {
	gomega.RegisterFailHandler(ginkgo.Fail)
	ginkgo.RunSpecs(t, "Department Module Suite")
}

type mockRepository struct {
	departments map[string]*Department
	// positions per department id, non-deleted only
	positionCounts map[string]int64
}

func newMockRepository() *mockRepository {
	return &mockRepository{
		departments:    map[string]*Department{},
		positionCounts: map[string]int64{},
	}
}

func (m *mockRepository) Create(dept *Department) error {
	cp := *dept
	m.departments[dept.ID] = &cp
	return nil
}

func (m *mockRepository) GetByID(id string) (*Department, error) {
	dept, ok := m.departments[id]
	if !ok || dept.Status == StatusDeleted {
		return nil, nil
	}
	cp := *dept
	return &cp, nil
}

func (m *mockRepository) FindByName(name string, withDeleted bool) (*Department, error) {
	for _, dept := range m.departments {
		if dept.Name != name {
			continue
		}
		if !withDeleted && dept.Status == StatusDeleted {
			continue
		}
		cp := *dept
		return &cp, nil
	}
	return nil, nil
}

func (m *mockRepository) Update(dept *Department) error {
	cp := *dept
	m.departments[dept.ID] = &cp
	return nil
}

func (m *mockRepository) SoftDelete(id string) error {
	if dept, ok := m.departments[id]; ok {
		dept.Status = StatusDeleted
	}
	return nil
}

func (m *mockRepository) GetAll(limit, offset int) ([]*Department, int64, error) {
	var all []*Department
	for _, dept := range m.departments {
		if dept.Status != StatusDeleted {
			all = append(all, dept)
		}
	}
	return all, int64(len(all)), nil
}

func (m *mockRepository) Search(query string, limit, offset int) ([]*Department, int64, error) {
	return m.GetAll(limit, offset)
}

func (m *mockRepository) CountDependentPositions(departmentID string) (int64, error) {
	return m.positionCounts[departmentID], nil
}

func (m *mockRepository) Stats() (*Stats, error) {
	return &Stats{}, nil
}

var _ = ginkgo.Describe("DepartmentService", func() {
	var (
		service *Service
		repo    *mockRepository
	)

	ginkgo.BeforeEach(func() {
		repo = newMockRepository()
		service = NewService(repo, slog.Default())
	})

	ginkgo.Describe("Create", func() {
		ginkgo.It("trims the name and defaults to active", func() {
			created, err := service.Create(CreateDepartmentDTO{Name: "  Operations  "})

			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(created.Name).To(gomega.Equal("Operations"))
			gomega.Expect(created.Status).To(gomega.Equal(StatusActive))
		})

		ginkgo.It("rejects a duplicate name", func() {
			_, err := service.Create(CreateDepartmentDTO{Name: "Operations"})
			gomega.Expect(err).NotTo(gomega.HaveOccurred())

			_, err = service.Create(CreateDepartmentDTO{Name: "Operations"})

			appErr, ok := internal.IsAppError(err)
			gomega.Expect(ok).To(gomega.BeTrue())
			gomega.Expect(appErr.Code).To(gomega.Equal(internal.ErrCodeNameTaken))
			gomega.Expect(appErr.StatusCode).To(gomega.Equal(400))
		})

		ginkgo.It("still rejects a name held by a soft-deleted department", func() {
			created, err := service.Create(CreateDepartmentDTO{Name: "Operations"})
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(service.Delete(created.ID)).To(gomega.Succeed())

			_, err = service.Create(CreateDepartmentDTO{Name: "Operations"})

			appErr, ok := internal.IsAppError(err)
			gomega.Expect(ok).To(gomega.BeTrue())
			gomega.Expect(appErr.Code).To(gomega.Equal(internal.ErrCodeNameTaken))
		})
	})

	ginkgo.Describe("Delete", func() {
		ginkgo.It("refuses while non-deleted positions reference the department", func() {
			created, err := service.Create(CreateDepartmentDTO{Name: "Operations"})
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			repo.positionCounts[created.ID] = 2

			err = service.Delete(created.ID)

			appErr, ok := internal.IsAppError(err)
			gomega.Expect(ok).To(gomega.BeTrue())
			gomega.Expect(appErr.Code).To(gomega.Equal(internal.ErrCodeDepartmentInUse))
		})

		ginkgo.It("succeeds once the positions are gone", func() {
			created, err := service.Create(CreateDepartmentDTO{Name: "Operations"})
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			repo.positionCounts[created.ID] = 0

			gomega.Expect(service.Delete(created.ID)).To(gomega.Succeed())

			_, err = service.GetByID(created.ID)
			appErr, ok := internal.IsAppError(err)
			gomega.Expect(ok).To(gomega.BeTrue())
			gomega.Expect(appErr.Type).To(gomega.Equal(internal.ErrorTypeNotFound))
		})
	})

	ginkgo.Describe("Update", func() {
		ginkgo.It("re-checks uniqueness when the name changes", func() {
			_, err := service.Create(CreateDepartmentDTO{Name: "Operations"})
			gomega.Expect(err).NotTo(gomega.HaveOccurred())

			second, err := service.Create(CreateDepartmentDTO{Name: "Logistics"})
			gomega.Expect(err).NotTo(gomega.HaveOccurred())

			_, err = service.Update(second.ID, UpdateDepartmentDTO{Name: strPtr("Operations")})

			appErr, ok := internal.IsAppError(err)
			gomega.Expect(ok).To(gomega.BeTrue())
			gomega.Expect(appErr.Code).To(gomega.Equal(internal.ErrCodeNameTaken))
		})

		ginkgo.It("allows keeping its own name", func() {
			created, err := service.Create(CreateDepartmentDTO{Name: "Operations"})
			gomega.Expect(err).NotTo(gomega.HaveOccurred())

			updated, err := service.Update(created.ID, UpdateDepartmentDTO{
				Name:        strPtr("Operations"),
				Description: strPtr("Field work"),
			})

			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(*updated.Description).To(gomega.Equal("Field work"))
		})
	})

	ginkgo.Describe("List", func() {
		ginkgo.It("returns pagination computed from the total", func() {
			for _, name := range []string{"A", "B", "C"} {
				_, err := service.Create(CreateDepartmentDTO{Name: name + " Department"})
				gomega.Expect(err).NotTo(gomega.HaveOccurred())
			}

			_, pagination, err := service.List(transport.PageParams{Page: 1, Limit: 10})

			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(pagination.Total).To(gomega.Equal(int64(3)))
			gomega.Expect(pagination.TotalPages).To(gomega.Equal(1))
		})
	})
})

func strPtr(s string) *string { return &s }
