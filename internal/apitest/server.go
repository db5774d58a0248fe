// Package apitest provides an in-memory stand-in for the external
// LocalFix API server. Package tests point the client at it to exercise
// every endpoint of the real wire contract, Mongo-style _id fields and
// populated cart problems included.
package apitest

import (
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/Amanjarngal/localfix-client/internal/domain"
	apperrors "github.com/Amanjarngal/localfix-client/pkg/util"
)

const bcryptCost = bcrypt.MinCost

type userRecord struct {
	user         domain.User
	passwordHash string
}

type cartItemRecord struct {
	id          string
	problemID   string
	serviceName string
}

type cartRecord struct {
	id     string
	userID string
	items  []cartItemRecord
}

// EnrollmentCapture records one multipart enrollment submission exactly
// as it arrived, for assertions on the serialized form. Files maps field
// name to filename, FileTypes to the part's Content-Type header.
type EnrollmentCapture struct {
	Values    map[string]string
	Files     map[string]string
	FileTypes map[string]string
}

// Server is the fake API. Stores are maps behind a mutex; the real
// persistence lives on the unseen backend, so nothing here survives the
// process.
type Server struct {
	URL string

	app    *fiber.App
	ln     net.Listener
	secret []byte

	mu          sync.RWMutex
	users       map[string]*userRecord
	services    map[string]*domain.Service
	problems    map[string]*domain.Problem
	carts       map[string]*cartRecord
	providers   map[string]*domain.ProviderApplication
	enrollments []EnrollmentCapture

	hitMu sync.Mutex
	hits  map[string]int
}

// NewServer starts the fake API on a loopback port.
func NewServer() (*Server, error) {
	s := &Server{
		secret:    []byte("apitest-secret"),
		users:     make(map[string]*userRecord),
		services:  make(map[string]*domain.Service),
		problems:  make(map[string]*domain.Problem),
		carts:     make(map[string]*cartRecord),
		providers: make(map[string]*domain.ProviderApplication),
		hits:      make(map[string]int),
	}

	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	app.Use(s.hitCounter())
	app.Use(errorMiddleware())
	s.registerRoutes(app)
	s.app = app

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return nil, err
	}
	s.ln = ln
	s.URL = "http://" + ln.Addr().String()

	// Block until fiber is serving, so a Close issued right after
	// NewServer cannot race a not-yet-started app.
	ready := make(chan struct{})
	app.Hooks().OnListen(func(fiber.ListenData) error {
		close(ready)
		return nil
	})
	go func() {
		_ = app.Listener(ln)
	}()
	<-ready
	return s, nil
}

// Close shuts the fake API down. The listener is closed as well so the
// port stops accepting no matter what state the app is in.
func (s *Server) Close() {
	_ = s.app.Shutdown()
	_ = s.ln.Close()
}

// Hits returns how often a method+path pair was requested, e.g.
// Hits("GET", "/api/providers"). Tests use it to assert the
// refetch-after-mutation contract.
func (s *Server) Hits(method, path string) int {
	s.hitMu.Lock()
	defer s.hitMu.Unlock()
	return s.hits[method+" "+path]
}

// LastEnrollment returns the most recent enrollment submission.
func (s *Server) LastEnrollment() (EnrollmentCapture, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.enrollments) == 0 {
		return EnrollmentCapture{}, false
	}
	return s.enrollments[len(s.enrollments)-1], true
}

// EnrollmentCount returns how many enrollment submissions arrived.
func (s *Server) EnrollmentCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.enrollments)
}

func (s *Server) hitCounter() fiber.Handler {
	return func(c *fiber.Ctx) error {
		s.hitMu.Lock()
		s.hits[c.Method()+" "+c.Path()]++
		s.hitMu.Unlock()
		return c.Next()
	}
}

// errorMiddleware renders every handler error in the uniform
// { success: false, message } envelope the real backend uses.
func errorMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = apperrors.NewInternalError(fmt.Errorf("panic: %v", r))
			}
			if err != nil {
				de := apperrors.ToDomainError(err)
				status := de.HTTPStatus
				if status == 0 {
					status = fiber.StatusInternalServerError
				}
				c.Status(status)
				_ = c.JSON(fiber.Map{"success": false, "message": de.Message})
				err = nil
			}
		}()
		return c.Next()
	}
}

// SeedUser registers an account directly in the store.
func (s *Server) SeedUser(name, email, password string, role domain.Role) domain.User {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		panic(err)
	}
	user := domain.User{
		ID:        uuid.NewString(),
		Name:      name,
		Email:     email,
		Role:      role,
		CreatedAt: time.Now().UTC().Truncate(time.Second),
	}
	s.mu.Lock()
	s.users[user.ID] = &userRecord{user: user, passwordHash: string(hash)}
	s.mu.Unlock()
	return user
}

// SeedService inserts a service category.
func (s *Server) SeedService(name, description, icon string) domain.Service {
	service := domain.Service{ID: uuid.NewString(), Name: name, Description: description, Icon: icon}
	s.mu.Lock()
	s.services[service.ID] = &service
	s.mu.Unlock()
	return service
}

// SeedProblem inserts a priced issue under a service.
func (s *Server) SeedProblem(serviceID, title, description string, price float64) domain.Problem {
	problem := domain.Problem{
		ID:          uuid.NewString(),
		ServiceID:   serviceID,
		Title:       title,
		Description: description,
		Price:       price,
	}
	s.mu.Lock()
	s.problems[problem.ID] = &problem
	s.mu.Unlock()
	return problem
}

// SeedApplication inserts a provider application with a given status.
func (s *Server) SeedApplication(ownerName, businessName, email string, status domain.ApplicationStatus) domain.ProviderApplication {
	app := domain.ProviderApplication{
		ID:           uuid.NewString(),
		OwnerName:    ownerName,
		BusinessName: businessName,
		Email:        email,
		Status:       status,
		CreatedAt:    time.Now().UTC().Truncate(time.Second),
	}
	s.mu.Lock()
	s.providers[app.ID] = &app
	s.mu.Unlock()
	return app
}

// DeleteProblemDirect removes a problem behind the client's back,
// leaving any cart items referencing it dangling.
func (s *Server) DeleteProblemDirect(problemID string) {
	s.mu.Lock()
	delete(s.problems, problemID)
	s.mu.Unlock()
}

func (s *Server) issueToken(user domain.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":  user.ID,
		"role": string(user.Role),
		"iat":  jwt.NewNumericDate(time.Now()),
		"exp":  jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}
