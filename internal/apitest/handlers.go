package apitest

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/Amanjarngal/localfix-client/internal/domain"
	apperrors "github.com/Amanjarngal/localfix-client/pkg/util"
)

func (s *Server) registerRoutes(app *fiber.App) {
	auth := app.Group("/api/auth")
	auth.Post("/signup", s.handleSignup)
	auth.Post("/login", s.handleLogin)
	auth.Get("/users", s.handleListUsers)

	app.Get("/api/services", s.handleListServices)
	app.Post("/api/services", s.handleCreateService)
	app.Put("/api/services/:id", s.handleUpdateService)
	app.Delete("/api/services/:id", s.handleDeleteService)

	app.Get("/api/problems/service/:serviceId", s.handleListProblems)
	app.Post("/api/problems", s.handleCreateProblem)
	app.Put("/api/problems/:id", s.handleUpdateProblem)
	app.Delete("/api/problems/:id", s.handleDeleteProblem)

	app.Get("/api/cart/:userId", s.handleGetCart)
	app.Post("/api/cart/add", s.handleCartAdd)
	app.Post("/api/cart/remove", s.handleCartRemove)

	app.Get("/api/providers", s.handleListProviders)
	app.Post("/api/providers/enroll", s.handleEnroll)
	app.Patch("/api/providers/status/:id", s.handleProviderStatus)
}

type signupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) handleSignup(c *fiber.Ctx) error {
	var req signupRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return apperrors.NewValidationError("name, email, password required", nil)
	}

	s.mu.Lock()
	for _, rec := range s.users {
		if strings.EqualFold(rec.user.Email, req.Email) {
			s.mu.Unlock()
			return apperrors.NewValidationError("email already registered", nil)
		}
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		s.mu.Unlock()
		return apperrors.NewInternalError(err)
	}
	user := domain.User{
		ID:        uuid.NewString(),
		Name:      req.Name,
		Email:     req.Email,
		Role:      domain.RoleCustomer,
		CreatedAt: time.Now().UTC().Truncate(time.Second),
	}
	s.users[user.ID] = &userRecord{user: user, passwordHash: string(hash)}
	s.mu.Unlock()

	token, err := s.issueToken(user)
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": user, "token": token})
}

func (s *Server) handleLogin(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	s.mu.RLock()
	var rec *userRecord
	for _, candidate := range s.users {
		if strings.EqualFold(candidate.user.Email, req.Email) {
			rec = candidate
			break
		}
	}
	s.mu.RUnlock()

	if rec == nil || bcrypt.CompareHashAndPassword([]byte(rec.passwordHash), []byte(req.Password)) != nil {
		return apperrors.NewUnauthorized("invalid credentials")
	}

	token, err := s.issueToken(rec.user)
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	return c.JSON(fiber.Map{"success": true, "data": rec.user, "token": token})
}

func (s *Server) handleListUsers(c *fiber.Ctx) error {
	s.mu.RLock()
	users := make([]domain.User, 0, len(s.users))
	for _, rec := range s.users {
		users = append(users, rec.user)
	}
	s.mu.RUnlock()
	return c.JSON(fiber.Map{"success": true, "data": users})
}

type serviceRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

func (s *Server) handleListServices(c *fiber.Ctx) error {
	s.mu.RLock()
	services := make([]domain.Service, 0, len(s.services))
	for _, service := range s.services {
		services = append(services, *service)
	}
	s.mu.RUnlock()
	return c.JSON(fiber.Map{"success": true, "data": services})
}

func (s *Server) handleCreateService(c *fiber.Ctx) error {
	var req serviceRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Name == "" {
		return apperrors.NewValidationError("name required", nil)
	}
	service := domain.Service{ID: uuid.NewString(), Name: req.Name, Description: req.Description, Icon: req.Icon}
	s.mu.Lock()
	s.services[service.ID] = &service
	s.mu.Unlock()
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": service})
}

func (s *Server) handleUpdateService(c *fiber.Ctx) error {
	var req serviceRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	service, ok := s.services[c.Params("id")]
	if !ok {
		return apperrors.NewNotFound("service", nil)
	}
	service.Name = req.Name
	service.Description = req.Description
	service.Icon = req.Icon
	return c.JSON(fiber.Map{"success": true, "data": *service})
}

func (s *Server) handleDeleteService(c *fiber.Ctx) error {
	id := c.Params("id")
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.services[id]; !ok {
		return apperrors.NewNotFound("service", nil)
	}
	delete(s.services, id)
	// Cascade: a service takes its problems with it. Cart items keep
	// their dangling references.
	for problemID, problem := range s.problems {
		if problem.ServiceID == id {
			delete(s.problems, problemID)
		}
	}
	return c.JSON(fiber.Map{"success": true})
}

type problemRequest struct {
	ServiceID   string  `json:"serviceId"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
}

func (s *Server) handleListProblems(c *fiber.Ctx) error {
	serviceID := c.Params("serviceId")
	s.mu.RLock()
	problems := make([]domain.Problem, 0)
	for _, problem := range s.problems {
		if problem.ServiceID == serviceID {
			problems = append(problems, *problem)
		}
	}
	s.mu.RUnlock()
	return c.JSON(fiber.Map{"success": true, "data": problems})
}

func (s *Server) handleCreateProblem(c *fiber.Ctx) error {
	var req problemRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Title == "" || req.ServiceID == "" {
		return apperrors.NewValidationError("serviceId and title required", nil)
	}
	if req.Price < 0 {
		return apperrors.NewValidationError("price must be non-negative", nil)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.services[req.ServiceID]; !ok {
		return apperrors.NewNotFound("service", nil)
	}
	problem := domain.Problem{
		ID:          uuid.NewString(),
		ServiceID:   req.ServiceID,
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
	}
	s.problems[problem.ID] = &problem
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": problem})
}

func (s *Server) handleUpdateProblem(c *fiber.Ctx) error {
	var req problemRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Price < 0 {
		return apperrors.NewValidationError("price must be non-negative", nil)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	problem, ok := s.problems[c.Params("id")]
	if !ok {
		return apperrors.NewNotFound("problem", nil)
	}
	problem.Title = req.Title
	problem.Description = req.Description
	problem.Price = req.Price
	return c.JSON(fiber.Map{"success": true, "data": *problem})
}

func (s *Server) handleDeleteProblem(c *fiber.Ctx) error {
	id := c.Params("id")
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.problems[id]; !ok {
		return apperrors.NewNotFound("problem", nil)
	}
	delete(s.problems, id)
	return c.JSON(fiber.Map{"success": true})
}

type cartAddRequest struct {
	UserID      string `json:"userId"`
	ProblemID   string `json:"problemId"`
	ServiceName string `json:"serviceName"`
}

type cartRemoveRequest struct {
	UserID string `json:"userId"`
	ItemID string `json:"itemId"`
}

func (s *Server) handleGetCart(c *fiber.Ctx) error {
	userID := c.Params("userId")
	s.mu.RLock()
	defer s.mu.RUnlock()
	cart, ok := s.carts[userID]
	if !ok {
		// No cart yet; the client sees an empty one. Creation happens
		// implicitly on first add.
		return c.JSON(fiber.Map{"success": true, "cart": fiber.Map{
			"_id": "", "userId": userID, "items": []fiber.Map{}, "totalPrice": 0,
		}})
	}
	return c.JSON(fiber.Map{"success": true, "cart": s.renderCartLocked(cart)})
}

func (s *Server) handleCartAdd(c *fiber.Ctx) error {
	var req cartAddRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.UserID == "" || req.ProblemID == "" {
		return apperrors.NewValidationError("userId and problemId required", nil)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.problems[req.ProblemID]; !ok {
		return apperrors.NewNotFound("problem", nil)
	}
	cart, ok := s.carts[req.UserID]
	if !ok {
		cart = &cartRecord{id: uuid.NewString(), userID: req.UserID}
		s.carts[req.UserID] = cart
	}
	cart.items = append(cart.items, cartItemRecord{
		id:          uuid.NewString(),
		problemID:   req.ProblemID,
		serviceName: req.ServiceName,
	})
	return c.JSON(fiber.Map{"success": true, "cart": s.renderCartLocked(cart)})
}

func (s *Server) handleCartRemove(c *fiber.Ctx) error {
	var req cartRemoveRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	cart, ok := s.carts[req.UserID]
	if !ok {
		return apperrors.NewNotFound("cart", nil)
	}
	// itemId carries the problem id, matching the real backend.
	kept := cart.items[:0]
	for _, item := range cart.items {
		if item.problemID != req.ItemID {
			kept = append(kept, item)
		}
	}
	cart.items = kept
	return c.JSON(fiber.Map{"success": true, "cart": s.renderCartLocked(cart)})
}

// renderCartLocked renders a cart with populated problem references and
// a freshly computed total. Items whose problem is gone render with a
// null problemId and contribute nothing to the total; they are never
// dropped server-side either. Callers hold s.mu.
func (s *Server) renderCartLocked(cart *cartRecord) fiber.Map {
	items := make([]fiber.Map, 0, len(cart.items))
	total := 0.0
	for _, item := range cart.items {
		var populated any
		if problem, ok := s.problems[item.problemID]; ok {
			populated = *problem
			total += problem.Price
		}
		items = append(items, fiber.Map{
			"_id":         item.id,
			"problemId":   populated,
			"serviceName": item.serviceName,
		})
	}
	return fiber.Map{"_id": cart.id, "userId": cart.userID, "items": items, "totalPrice": total}
}

func (s *Server) handleListProviders(c *fiber.Ctx) error {
	s.mu.RLock()
	apps := make([]domain.ProviderApplication, 0, len(s.providers))
	for _, app := range s.providers {
		apps = append(apps, *app)
	}
	s.mu.RUnlock()
	return c.JSON(fiber.Map{"success": true, "data": apps})
}

type providerStatusRequest struct {
	Status string `json:"status"`
}

func (s *Server) handleProviderStatus(c *fiber.Ctx) error {
	var req providerStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	status := domain.ApplicationStatus(req.Status)
	if status != domain.ApplicationStatusApproved && status != domain.ApplicationStatusRejected {
		return apperrors.NewValidationError("status must be approved or rejected", nil)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	app, ok := s.providers[c.Params("id")]
	if !ok {
		return apperrors.NewNotFound("application", nil)
	}
	if app.Status != domain.ApplicationStatusPending {
		return apperrors.NewConflict("application already reviewed", nil)
	}
	app.Status = status
	return c.JSON(fiber.Map{"success": true, "data": *app})
}

func (s *Server) handleEnroll(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return apperrors.NewValidationError("multipart form required", nil)
	}

	values := make(map[string]string, len(form.Value))
	for field, list := range form.Value {
		if len(list) > 0 {
			values[field] = list[0]
		}
	}
	files := make(map[string]string, len(form.File))
	fileTypes := make(map[string]string, len(form.File))
	for field, list := range form.File {
		if len(list) > 0 {
			files[field] = list[0].Filename
			fileTypes[field] = list[0].Header.Get("Content-Type")
		}
	}

	if values["ownerName"] == "" || values["email"] == "" || values["businessName"] == "" {
		return apperrors.NewValidationError("ownerName, email and businessName are required", nil)
	}

	app := domain.ProviderApplication{
		ID:              uuid.NewString(),
		OwnerName:       values["ownerName"],
		Email:           values["email"],
		BusinessName:    values["businessName"],
		Phone:           values["phone"],
		DOB:             values["dob"],
		Gender:          values["gender"],
		PrimaryService:  values["primaryService"],
		OtherServices:   values["otherServices"],
		Experience:      values["experience"],
		ServiceCategory: values["serviceCategory"],
		Description:     values["description"],
		Address:         values["address"],
		City:            values["city"],
		Area:            values["area"],
		Pincode:         values["pincode"],
		IDType:          values["idType"],
		IDNumber:        values["idNumber"],
		Status:          domain.ApplicationStatusPending,
		CreatedAt:       time.Now().UTC().Truncate(time.Second),
	}
	app.EmergencyAvailability = values["emergencyAvailability"] == "true"
	if raw := values["workingDays"]; raw != "" {
		if err := json.Unmarshal([]byte(raw), &app.WorkingDays); err != nil {
			return apperrors.NewValidationError("workingDays must be a JSON array", nil)
		}
	}
	if raw := values["additionalSkills"]; raw != "" {
		if err := json.Unmarshal([]byte(raw), &app.AdditionalSkills); err != nil {
			return apperrors.NewValidationError("additionalSkills must be a JSON array", nil)
		}
	}
	if raw := values["workingHours"]; raw != "" {
		if err := json.Unmarshal([]byte(raw), &app.WorkingHours); err != nil {
			return apperrors.NewValidationError("workingHours must be a JSON object", nil)
		}
	}

	s.mu.Lock()
	s.providers[app.ID] = &app
	s.enrollments = append(s.enrollments, EnrollmentCapture{Values: values, Files: files, FileTypes: fileTypes})
	s.mu.Unlock()

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": app})
}
