package pages

import "github.com/playwright-community/playwright-go"

// Login is the practice login form.
type Login struct {
	Username     playwright.Locator
	Password     playwright.Locator
	LoginButton  playwright.Locator
	FlashMessage playwright.Locator
}

func NewLogin(page playwright.Page) *Login {
	return &Login{
		Username:     page.Locator("#username"),
		Password:     page.Locator("#password"),
		LoginButton:  page.Locator("button[type=submit]"),
		FlashMessage: page.Locator("#flash"),
	}
}

// Register is the practice registration form.
type Register struct {
	Username        playwright.Locator
	Password        playwright.Locator
	ConfirmPassword playwright.Locator
	RegisterButton  playwright.Locator
	FlashMessage    playwright.Locator
}

func NewRegister(page playwright.Page) *Register {
	return &Register{
		Username:        page.Locator("#username"),
		Password:        page.Locator("#password"),
		ConfirmPassword: page.Locator("#confirmPassword"),
		RegisterButton:  page.Locator("button[type=submit]"),
		FlashMessage:    page.Locator("#flash"),
	}
}

// SignIn is the conduit-style sign-in form (email instead of username).
type SignIn struct {
	Email        playwright.Locator
	Password     playwright.Locator
	SignInButton playwright.Locator
	ErrorList    playwright.Locator
}

func NewSignIn(page playwright.Page) *SignIn {
	return &SignIn{
		Email:        page.Locator("input[type=email]"),
		Password:     page.Locator("input[type=password]"),
		SignInButton: page.Locator("button[type=submit]"),
		ErrorList:    page.Locator(".error-messages"),
	}
}

// SignUp is the conduit-style sign-up form.
type SignUp struct {
	Username     playwright.Locator
	Email        playwright.Locator
	Password     playwright.Locator
	SignUpButton playwright.Locator
	ErrorList    playwright.Locator
}

func NewSignUp(page playwright.Page) *SignUp {
	return &SignUp{
		Username:     page.Locator("input[placeholder=Username]"),
		Email:        page.Locator("input[type=email]"),
		Password:     page.Locator("input[type=password]"),
		SignUpButton: page.Locator("button[type=submit]"),
		ErrorList:    page.Locator(".error-messages"),
	}
}

// UserDashboard is the page shown after a successful login.
type UserDashboard struct {
	Heading      playwright.Locator
	FlashMessage playwright.Locator
	LogoutButton playwright.Locator
}

func NewUserDashboard(page playwright.Page) *UserDashboard {
	return &UserDashboard{
		Heading:      page.Locator("h1, h2").First(),
		FlashMessage: page.Locator("#flash"),
		LogoutButton: page.Locator("a[href*='logout'], button#logout").First(),
	}
}
