package school

import (
	"context"
	"errors"
	"time"

	"github.com/kbukum/schoolauth/auth/jwt"
	"github.com/kbukum/schoolauth/auth/password"
	apperrors "github.com/kbukum/schoolauth/errors"
	"github.com/kbukum/schoolauth/logger"
	"github.com/kbukum/schoolauth/observability"
	"github.com/kbukum/schoolauth/store"
)

const serviceName = "schoolauth"

// Roles embedded in issued tokens. The role is derived from the collection
// the principal was found in, never from client input.
const (
	RoleStudent = "student"
	RoleParent  = "parent"
)

// StudentStore is the slice of the students collection the flows need.
type StudentStore interface {
	FindByEmail(ctx context.Context, email string) (*store.Student, error)
	Exists(ctx context.Context, email, number, educationCode string) (bool, error)
	Insert(ctx context.Context, s *store.Student) (string, error)
}

// ParentStore is the slice of the parents collection the flows need.
type ParentStore interface {
	FindByEmail(ctx context.Context, email string) (*store.Parent, error)
	Exists(ctx context.Context, email, number, childStudentID string) (bool, error)
	Insert(ctx context.Context, p *store.Parent) (string, error)
}

// Service orchestrates credential verification, token issuance, and
// registration. All collaborators are injected; the service holds no
// ambient state.
type Service struct {
	students StudentStore
	parents  ParentStore
	hasher   password.Hasher
	tokens   *jwt.Service
	log      *logger.Logger
	metrics  *observability.Metrics
	now      func() time.Time
}

// NewService creates the flow service.
func NewService(students StudentStore, parents ParentStore, hasher password.Hasher, tokens *jwt.Service, log *logger.Logger) *Service {
	return &Service{
		students: students,
		parents:  parents,
		hasher:   hasher,
		tokens:   tokens,
		log:      log.WithComponent("school"),
		now:      time.Now,
	}
}

// WithMetrics attaches metric instruments to the service. A nil Metrics is
// valid and records nothing.
func (s *Service) WithMetrics(m *observability.Metrics) *Service {
	s.metrics = m
	return s
}

// observe traces and measures one operation. The returned func takes the
// operation outcome.
func (s *Service) observe(ctx context.Context, op string) (context.Context, func(err error)) {
	ctx, span := observability.StartSpan(ctx, "school."+op)
	start := s.now()
	return ctx, func(err error) {
		status := "ok"
		if err != nil {
			status = "error"
			observability.SetSpanError(ctx, err)
			if appErr, ok := apperrors.AsAppError(err); ok {
				s.metrics.RecordError(ctx, string(appErr.Code), "school")
			}
		}
		s.metrics.RecordOperation(ctx, serviceName, op, status, s.now().Sub(start))
		span.End()
	}
}

// User is the sanitized principal summary returned on login. It never
// carries the password hash.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// LoginResult is the outcome of a successful login.
type LoginResult struct {
	Token string
	User  User
}

// Login verifies the credentials against the students collection first, then
// parents, and issues a signed token on success. An unknown email yields
// NOT_FOUND; a wrong password yields INVALID_CREDENTIALS.
func (s *Service) Login(ctx context.Context, email, plaintext string) (res *LoginResult, err error) {
	ctx, done := s.observe(ctx, "login")
	defer func() { done(err) }()

	if email == "" || plaintext == "" {
		return nil, apperrors.Validation("Email and password are required")
	}

	user, hash, err := s.findPrincipal(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperrors.NotFound("user")
	}

	if err := s.hasher.Verify(plaintext, hash); err != nil {
		if errors.Is(err, password.ErrMismatch) {
			return nil, apperrors.InvalidCredentials()
		}
		return nil, apperrors.Internal(err)
	}

	token, err := s.tokens.Generate(&jwt.Claims{
		UserID: user.ID,
		Name:   user.Name,
		Email:  user.Email,
		Role:   user.Role,
	})
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	s.log.Info("Login successful", logger.Fields(
		logger.FieldUserID, user.ID,
		logger.FieldRole, user.Role,
	))
	return &LoginResult{Token: token, User: *user}, nil
}

// findPrincipal looks the email up in both collections. The student
// collection wins when the same email exists in both.
func (s *Service) findPrincipal(ctx context.Context, email string) (*User, string, error) {
	student, err := s.students.FindByEmail(ctx, email)
	if err != nil {
		return nil, "", apperrors.DatabaseError(err)
	}
	if student != nil {
		return &User{
			ID:    student.ID.Hex(),
			Name:  student.Name,
			Email: student.Email,
			Role:  RoleStudent,
		}, student.PasswordHash, nil
	}

	parent, err := s.parents.FindByEmail(ctx, email)
	if err != nil {
		return nil, "", apperrors.DatabaseError(err)
	}
	if parent != nil {
		return &User{
			ID:    parent.ID.Hex(),
			Name:  parent.Name,
			Email: parent.Email,
			Role:  RoleParent,
		}, parent.PasswordHash, nil
	}

	return nil, "", nil
}

// RegisterStudentInput carries the fields of a student registration.
type RegisterStudentInput struct {
	Name          string
	Email         string
	Password      string
	StudentClass  string
	EducationCode string
	Number        string
}

// RegisterParentInput carries the fields of a parent registration.
type RegisterParentInput struct {
	Name           string
	Email          string
	Password       string
	Number         string
	Relationship   string
	ChildStudentID string
}

// RegisterResult is the store's insertion acknowledgment.
type RegisterResult struct {
	InsertedID string `json:"insertedId"`
}

// RegisterStudent checks the composite key (email, number, educationCode)
// for duplicates, hashes the password, and inserts the record.
func (s *Service) RegisterStudent(ctx context.Context, in RegisterStudentInput) (res *RegisterResult, err error) {
	ctx, done := s.observe(ctx, "register_student")
	defer func() { done(err) }()

	exists, err := s.students.Exists(ctx, in.Email, in.Number, in.EducationCode)
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	if exists {
		return nil, apperrors.AlreadyExists(RoleStudent)
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	id, err := s.students.Insert(ctx, &store.Student{
		Name:          in.Name,
		Email:         in.Email,
		PasswordHash:  hash,
		StudentClass:  in.StudentClass,
		EducationCode: in.EducationCode,
		Number:        in.Number,
		CreatedAt:     s.now().UTC(),
	})
	if err != nil {
		// The unique index closes the race the pre-check leaves open.
		if store.IsDuplicateKey(err) {
			return nil, apperrors.AlreadyExists(RoleStudent)
		}
		return nil, apperrors.DatabaseError(err)
	}

	s.log.Info("Student registered", logger.Fields(logger.FieldUserID, id))
	return &RegisterResult{InsertedID: id}, nil
}

// RegisterParent checks the composite key (email, number, childStudentId)
// for duplicates, hashes the password, and inserts the record.
func (s *Service) RegisterParent(ctx context.Context, in RegisterParentInput) (res *RegisterResult, err error) {
	ctx, done := s.observe(ctx, "register_parent")
	defer func() { done(err) }()

	exists, err := s.parents.Exists(ctx, in.Email, in.Number, in.ChildStudentID)
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	if exists {
		return nil, apperrors.AlreadyExists(RoleParent)
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	id, err := s.parents.Insert(ctx, &store.Parent{
		Name:           in.Name,
		Email:          in.Email,
		PasswordHash:   hash,
		Number:         in.Number,
		Relationship:   in.Relationship,
		ChildStudentID: in.ChildStudentID,
		CreatedAt:      s.now().UTC(),
	})
	if err != nil {
		if store.IsDuplicateKey(err) {
			return nil, apperrors.AlreadyExists(RoleParent)
		}
		return nil, apperrors.DatabaseError(err)
	}

	s.log.Info("Parent registered", logger.Fields(logger.FieldUserID, id))
	return &RegisterResult{InsertedID: id}, nil
}
