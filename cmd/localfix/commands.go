package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/Amanjarngal/localfix-client/internal/admin"
	"github.com/Amanjarngal/localfix-client/internal/api"
	"github.com/Amanjarngal/localfix-client/internal/cart"
	"github.com/Amanjarngal/localfix-client/internal/domain"
)

func (a *app) cmdLogin(ctx context.Context) {
	email := a.readLine("Email: ")
	password := a.readLine("Password: ")
	user, err := a.session.Login(ctx, email, password)
	if err != nil {
		a.notifier.Error("Login failed")
		return
	}
	fmt.Printf("Welcome back, %s.\n", user.Name)
}

func (a *app) cmdSignup(ctx context.Context) {
	name := a.readLine("Name: ")
	email := a.readLine("Email: ")
	password := a.readLine("Password: ")
	user, err := a.session.Signup(ctx, name, email, password)
	if err != nil {
		a.notifier.Error("Signup failed")
		return
	}
	fmt.Printf("Account created for %s.\n", user.Email)
}

func (a *app) cmdWhoami() {
	user, ok := a.session.Current()
	if !ok {
		fmt.Println("Not logged in.")
		return
	}
	fmt.Printf("%s <%s> role=%s\n", user.Name, user.Email, user.Role)
}

func (a *app) cmdServices(ctx context.Context) {
	if err := a.browser.Load(ctx); err != nil {
		return
	}
	for i, service := range a.browser.Services() {
		fmt.Printf("%2d. %-20s %s\n", i+1, service.Name, service.Description)
	}
}

func (a *app) serviceByIndex(raw string) (domain.Service, bool) {
	index, err := strconv.Atoi(raw)
	services := a.browser.Services()
	if err != nil || index < 1 || index > len(services) {
		fmt.Println("pick a service number from \"services\"")
		return domain.Service{}, false
	}
	return services[index-1], true
}

func (a *app) cmdProblems(ctx context.Context, args []string) {
	if len(args) != 1 {
		fmt.Println("usage: problems <service-number>")
		return
	}
	service, ok := a.serviceByIndex(args[0])
	if !ok {
		return
	}
	problems, err := a.browser.Problems(ctx, service.ID)
	if err != nil {
		return
	}
	fmt.Printf("%s:\n", service.Name)
	for i, problem := range problems {
		fmt.Printf("%2d. %-30s ₹%.0f\n", i+1, problem.Title, problem.Price)
	}
}

func (a *app) cmdCart(ctx context.Context, args []string) {
	if len(args) == 0 {
		a.showCart(ctx)
		return
	}
	switch args[0] {
	case "add":
		if len(args) != 3 {
			fmt.Println("usage: cart add <service-number> <problem-number>")
			return
		}
		service, ok := a.serviceByIndex(args[1])
		if !ok {
			return
		}
		problems, err := a.browser.Problems(ctx, service.ID)
		if err != nil {
			return
		}
		index, err := strconv.Atoi(args[2])
		if err != nil || index < 1 || index > len(problems) {
			fmt.Println("pick a problem number from \"problems\"")
			return
		}
		if err := a.cart.AddItem(ctx, problems[index-1].ID, service.Name); err == nil {
			fmt.Printf("Added. Cart total ₹%.0f (%d items)\n", a.cart.Total(), a.cart.Count())
		}
	case "rm":
		if len(args) != 2 {
			fmt.Println("usage: cart rm <item-number>")
			return
		}
		items := a.cart.Items()
		index, err := strconv.Atoi(args[1])
		if err != nil || index < 1 || index > len(items) {
			fmt.Println("pick an item number from \"cart\"")
			return
		}
		item := items[index-1]
		if !item.Available() {
			fmt.Println("item's problem no longer exists; the server will keep it until removed by id")
			return
		}
		_ = a.cart.RemoveItem(ctx, item.Problem.ID)
	default:
		fmt.Println("usage: cart [add <n> <m> | rm <m>]")
	}
}

func (a *app) showCart(ctx context.Context) {
	if err := a.cart.Fetch(ctx); err != nil {
		if err == cart.ErrNotLoggedIn {
			fmt.Println("Please login to view your cart.")
		}
		return
	}
	if a.cart.Empty() {
		fmt.Println("Your cart is empty. Browse \"services\" to add repairs.")
		return
	}
	for i, item := range a.cart.Items() {
		fmt.Printf("%2d. [%s] %-30s ₹%.0f\n", i+1, item.ServiceName, item.Title(), item.Price())
	}
	fmt.Printf("Total: ₹%.0f\n", a.cart.Total())
}

func (a *app) cmdAdmin(ctx context.Context, args []string) {
	if !a.session.IsAdmin() {
		fmt.Println("Admin access required. Please login as an admin.")
		return
	}
	if len(args) == 0 {
		fmt.Println("usage: admin users|apps|services|overview")
		return
	}
	switch args[0] {
	case "users":
		a.cmdAdminUsers(ctx, args[1:])
	case "apps":
		a.cmdAdminApps(ctx, args[1:])
	case "services":
		a.cmdAdminServices(ctx)
	case "overview":
		a.cmdAdminOverview(ctx)
	default:
		fmt.Println("usage: admin users|apps|services|overview")
	}
}

func (a *app) cmdAdminUsers(ctx context.Context, args []string) {
	if err := a.users.Load(ctx); err != nil {
		return
	}
	term := ""
	if len(args) > 0 {
		term = args[0]
	}
	for _, user := range a.users.Filter(term) {
		fmt.Printf("%-24s %-28s %s\n", user.Name, user.Email, user.Role)
	}
}

func (a *app) cmdAdminApps(ctx context.Context, args []string) {
	if err := a.apps.Load(ctx); err != nil {
		return
	}
	term := ""
	if len(args) > 0 {
		term = args[0]
	}
	apps := a.apps.Filter(term)
	for i, application := range apps {
		fmt.Printf("%2d. %-20s %-20s %s\n", i+1, application.BusinessName, application.OwnerName, application.Status)
	}
	choice := a.readLine("Review application number (blank to skip): ")
	if choice == "" {
		return
	}
	index, err := strconv.Atoi(choice)
	if err != nil || index < 1 || index > len(apps) {
		return
	}
	application := apps[index-1]
	if !a.apps.CanReview(application.ID) {
		fmt.Println("Application already reviewed.")
		return
	}
	status := domain.ApplicationStatusRejected
	if a.confirm("Approve " + application.BusinessName + "?") {
		status = domain.ApplicationStatusApproved
	}
	_ = a.apps.UpdateStatus(ctx, application.ID, status)
}

func (a *app) cmdAdminServices(ctx context.Context) {
	if err := a.servicesP.Load(ctx); err != nil {
		return
	}
	services := a.servicesP.Services()
	for i, service := range services {
		fmt.Printf("%2d. %-20s %s\n", i+1, service.Name, service.Description)
	}
	switch a.readLine("Action [new/edit/del/problems/skip]: ") {
	case "new":
		input := api.ServiceInput{
			Name:        a.readLine("Name: "),
			Description: a.readLine("Description: "),
			Icon:        a.readLine("Icon: "),
		}
		_ = a.servicesP.SaveService(ctx, "", input)
	case "edit":
		service, ok := a.pickService(services)
		if !ok {
			return
		}
		input := api.ServiceInput{
			Name:        a.readLine("Name: "),
			Description: a.readLine("Description: "),
			Icon:        a.readLine("Icon: "),
		}
		_ = a.servicesP.SaveService(ctx, service.ID, input)
	case "del":
		service, ok := a.pickService(services)
		if !ok {
			return
		}
		_ = a.servicesP.DeleteService(ctx, service.ID, a.confirm)
	case "problems":
		service, ok := a.pickService(services)
		if !ok {
			return
		}
		a.cmdAdminProblems(ctx, service)
	}
}

func (a *app) pickService(services []domain.Service) (domain.Service, bool) {
	choice := a.readLine("Service number: ")
	index, err := strconv.Atoi(choice)
	if err != nil || index < 1 || index > len(services) {
		return domain.Service{}, false
	}
	return services[index-1], true
}

func (a *app) cmdAdminProblems(ctx context.Context, service domain.Service) {
	problems, err := a.servicesP.Problems(ctx, service.ID)
	if err != nil {
		return
	}
	for i, problem := range problems {
		fmt.Printf("%2d. %-30s ₹%.0f\n", i+1, problem.Title, problem.Price)
	}
	switch a.readLine("Action [new/edit/del/skip]: ") {
	case "new":
		input := a.readProblemInput(service.ID)
		_ = a.servicesP.SaveProblem(ctx, "", input)
	case "edit":
		problem, ok := a.pickProblem(problems)
		if !ok {
			return
		}
		input := a.readProblemInput(service.ID)
		_ = a.servicesP.SaveProblem(ctx, problem.ID, input)
	case "del":
		problem, ok := a.pickProblem(problems)
		if !ok {
			return
		}
		_ = a.servicesP.DeleteProblem(ctx, problem.ID, service.ID, a.confirm)
	}
}

func (a *app) pickProblem(problems []domain.Problem) (domain.Problem, bool) {
	choice := a.readLine("Problem number: ")
	index, err := strconv.Atoi(choice)
	if err != nil || index < 1 || index > len(problems) {
		return domain.Problem{}, false
	}
	return problems[index-1], true
}

func (a *app) readProblemInput(serviceID string) api.ProblemInput {
	price, _ := strconv.ParseFloat(a.readLine("Price: "), 64)
	return api.ProblemInput{
		ServiceID:   serviceID,
		Title:       a.readLine("Title: "),
		Description: a.readLine("Description: "),
		Price:       price,
	}
}

func (a *app) cmdAdminOverview(ctx context.Context) {
	overview, err := admin.LoadOverview(ctx, a.client, a.session)
	if err != nil {
		a.notifier.Error("Could not load dashboard")
		return
	}
	fmt.Printf("Users: %d\nProviders: %d (pending %d)\n",
		overview.TotalUsers, overview.TotalProviders, overview.PendingProviders)
}
