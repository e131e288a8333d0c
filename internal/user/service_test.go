package user

import (
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
	"golang.org/x/crypto/bcrypt"

	internal "github.com/hrkit/hr-management/internal"
	"github.com/hrkit/hr-management/internal/transport"
)

func pageParams(page, limit int) transport.PageParams {
	return transport.PageParams{Page: page, Limit: limit}
}

func TestUser(t *testing.T) {
	gomega.RegisterFailHandler(ginkgo.Fail)
	ginkgo.RunSpecs(t, "User Module Suite")
}

type mockRepository struct {
	users     map[string]*User
	positions map[string]bool
}

func newMockRepository() *mockRepository {
	return &mockRepository{
		users:     map[string]*User{},
		positions: map[string]bool{},
	}
}

func (m *mockRepository) addPosition() string {
	id := uuid.NewString()
	m.positions[id] = true
	return id
}

func (m *mockRepository) Create(u *User) error {
	cp := *u
	m.users[u.ID] = &cp
	return nil
}

func (m *mockRepository) GetByID(id string) (*User, error) {
	u, ok := m.users[id]
	if !ok || u.Status == StatusDeleted {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

// FindByEmail sees deleted accounts too, the email stays occupied for life.
func (m *mockRepository) FindByEmail(email string) (*User, error) {
	for _, u := range m.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *mockRepository) Update(u *User) error {
	cp := *u
	m.users[u.ID] = &cp
	return nil
}

func (m *mockRepository) SoftDelete(id string) error {
	if u, ok := m.users[id]; ok {
		u.Status = StatusDeleted
	}
	return nil
}

func (m *mockRepository) GetAll(limit, offset int) ([]*User, int64, error) {
	var all []*User
	for _, u := range m.users {
		if u.Status != StatusDeleted {
			all = append(all, u)
		}
	}
	return all, int64(len(all)), nil
}

func (m *mockRepository) GetByRole(role string, limit, offset int) ([]*User, int64, error) {
	var matched []*User
	for _, u := range m.users {
		if u.Status != StatusDeleted && u.Role == role {
			matched = append(matched, u)
		}
	}
	return matched, int64(len(matched)), nil
}

func (m *mockRepository) Search(query string, limit, offset int) ([]*User, int64, error) {
	return m.GetAll(limit, offset)
}

func (m *mockRepository) PositionExists(positionID string) (bool, error) {
	return m.positions[positionID], nil
}

var _ = ginkgo.Describe("UserService", func() {
	var (
		service *Service
		repo    *mockRepository
	)

	ginkgo.BeforeEach(func() {
		repo = newMockRepository()
		service = NewService(repo, bcrypt.MinCost, slog.Default())
	})

	ginkgo.Describe("Create", func() {
		ginkgo.It("normalizes the email and defaults to an active client", func() {
			created, err := service.Create(CreateUserDTO{
				Name:     "  New Person  ",
				Email:    " New@Example.COM ",
				Password: "secret123",
			})

			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(created.Name).To(gomega.Equal("New Person"))
			gomega.Expect(created.Email).To(gomega.Equal("new@example.com"))
			gomega.Expect(created.Role).To(gomega.Equal(RoleClient))
			gomega.Expect(created.Status).To(gomega.Equal(StatusActive))
		})

		ginkgo.It("rejects a duplicate email regardless of case", func() {
			_, err := service.Create(CreateUserDTO{Name: "First", Email: "person@example.com", Password: "secret123"})
			gomega.Expect(err).NotTo(gomega.HaveOccurred())

			_, err = service.Create(CreateUserDTO{Name: "Second", Email: "PERSON@example.com", Password: "secret123"})

			appErr, ok := internal.IsAppError(err)
			gomega.Expect(ok).To(gomega.BeTrue())
			gomega.Expect(appErr.Code).To(gomega.Equal(internal.ErrCodeEmailTaken))
			gomega.Expect(appErr.StatusCode).To(gomega.Equal(400))
		})

		ginkgo.It("keeps the email occupied after a soft delete", func() {
			created, err := service.Create(CreateUserDTO{Name: "First", Email: "person@example.com", Password: "secret123"})
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(service.Delete(created.ID)).To(gomega.Succeed())

			_, err = service.Create(CreateUserDTO{Name: "Second", Email: "person@example.com", Password: "secret123"})

			appErr, ok := internal.IsAppError(err)
			gomega.Expect(ok).To(gomega.BeTrue())
			gomega.Expect(appErr.Code).To(gomega.Equal(internal.ErrCodeEmailTaken))
		})

		ginkgo.It("rejects an unknown position reference as 404", func() {
			positionID := uuid.NewString()
			_, err := service.Create(CreateUserDTO{
				Name:       "Worker",
				Email:      "worker@example.com",
				Password:   "secret123",
				Role:       RoleEmployee,
				PositionID: &positionID,
			})

			appErr, ok := internal.IsAppError(err)
			gomega.Expect(ok).To(gomega.BeTrue())
			gomega.Expect(appErr.Code).To(gomega.Equal(internal.ErrCodePositionNotFound))
			gomega.Expect(appErr.StatusCode).To(gomega.Equal(404))
		})

		ginkgo.It("accepts a known position and stores a hash, not the password", func() {
			positionID := repo.addPosition()
			created, err := service.Create(CreateUserDTO{
				Name:       "Worker",
				Email:      "worker@example.com",
				Password:   "secret123",
				Role:       RoleEmployee,
				PositionID: &positionID,
			})

			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			stored := repo.users[created.ID]
			gomega.Expect(stored.Password).NotTo(gomega.Equal("secret123"))
			gomega.Expect(bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("secret123"))).To(gomega.Succeed())
		})
	})

	ginkgo.Describe("Update", func() {
		var userID string

		ginkgo.BeforeEach(func() {
			created, err := service.Create(CreateUserDTO{Name: "Worker", Email: "worker@example.com", Password: "secret123", Role: RoleEmployee})
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			userID = created.ID
		})

		ginkgo.It("re-checks email uniqueness when it changes", func() {
			_, err := service.Create(CreateUserDTO{Name: "Other", Email: "other@example.com", Password: "secret123"})
			gomega.Expect(err).NotTo(gomega.HaveOccurred())

			email := "other@example.com"
			_, err = service.Update(userID, UpdateUserDTO{Email: &email})

			appErr, ok := internal.IsAppError(err)
			gomega.Expect(ok).To(gomega.BeTrue())
			gomega.Expect(appErr.Code).To(gomega.Equal(internal.ErrCodeEmailTaken))
		})

		ginkgo.It("allows keeping its own email", func() {
			email := "worker@example.com"
			name := "Renamed Worker"
			updated, err := service.Update(userID, UpdateUserDTO{Email: &email, Name: &name})

			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(updated.Name).To(gomega.Equal("Renamed Worker"))
		})

		ginkgo.It("re-hashes the password when one is supplied", func() {
			oldHash := repo.users[userID].Password

			password := "fresh-secret"
			_, err := service.Update(userID, UpdateUserDTO{Password: &password})

			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(repo.users[userID].Password).NotTo(gomega.Equal(oldHash))
			gomega.Expect(bcrypt.CompareHashAndPassword([]byte(repo.users[userID].Password), []byte("fresh-secret"))).To(gomega.Succeed())
		})

		ginkgo.It("clears the position when id_position is an empty string", func() {
			positionID := repo.addPosition()
			_, err := service.Update(userID, UpdateUserDTO{PositionID: &positionID})
			gomega.Expect(err).NotTo(gomega.HaveOccurred())

			empty := ""
			updated, err := service.Update(userID, UpdateUserDTO{PositionID: &empty})

			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(updated.PositionID).To(gomega.BeNil())
		})
	})

	ginkgo.Describe("UpdateProfile", func() {
		ginkgo.It("only touches name and email", func() {
			created, err := service.Create(CreateUserDTO{Name: "Worker", Email: "worker@example.com", Password: "secret123", Role: RoleEmployee})
			gomega.Expect(err).NotTo(gomega.HaveOccurred())

			name := "Self Renamed"
			updated, err := service.UpdateProfile(created.ID, UpdateProfileDTO{Name: &name})

			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(updated.Name).To(gomega.Equal("Self Renamed"))
			gomega.Expect(updated.Role).To(gomega.Equal(RoleEmployee))
		})
	})

	ginkgo.Describe("Delete", func() {
		ginkgo.It("hides the account from reads afterwards", func() {
			created, err := service.Create(CreateUserDTO{Name: "Worker", Email: "worker@example.com", Password: "secret123"})
			gomega.Expect(err).NotTo(gomega.HaveOccurred())

			gomega.Expect(service.Delete(created.ID)).To(gomega.Succeed())

			_, err = service.GetByID(created.ID)
			appErr, ok := internal.IsAppError(err)
			gomega.Expect(ok).To(gomega.BeTrue())
			gomega.Expect(appErr.Code).To(gomega.Equal(internal.ErrCodeUserNotFound))
		})
	})

	ginkgo.Describe("ListByRole", func() {
		ginkgo.It("rejects an unknown role value", func() {
			_, _, err := service.ListByRole("superuser", pageParams(1, 10))

			appErr, ok := internal.IsAppError(err)
			gomega.Expect(ok).To(gomega.BeTrue())
			gomega.Expect(appErr.Type).To(gomega.Equal(internal.ErrorTypeValidation))
		})

		ginkgo.It("filters to the requested role", func() {
			_, err := service.Create(CreateUserDTO{Name: "Worker", Email: "worker@example.com", Password: "secret123", Role: RoleEmployee})
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			_, err = service.Create(CreateUserDTO{Name: "Boss", Email: "boss@example.com", Password: "secret123", Role: RoleAdmin})
			gomega.Expect(err).NotTo(gomega.HaveOccurred())

			employees, pagination, err := service.ListByRole(RoleEmployee, pageParams(1, 10))
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(employees).To(gomega.HaveLen(1))
			gomega.Expect(pagination.Total).To(gomega.Equal(int64(1)))
		})
	})
})
