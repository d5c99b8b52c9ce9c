package e2e

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/probelab/uiharness/internal/pages"
)

func TestLoginWithValidCredentials(t *testing.T) {
	h := Setup(t)
	a := h.NewCase(t)

	require.NoError(t, a.Navigation.Goto(h.URL("/login")))
	login := pages.NewLogin(a.Page())

	require.NoError(t, a.Element.Fill(login.Username, demoUsername, "username"))
	require.NoError(t, a.Element.Fill(login.Password, demoPassword, "password"))
	require.NoError(t, a.Element.Click(login.LoginButton, "login button"))

	require.NoError(t, a.Navigation.ExpectURL(`/secure$`))
	secure := pages.NewUserDashboard(a.Page())
	require.NoError(t, a.Element.ExpectTextContains(secure.FlashMessage,
		"You logged into a secure area", "flash message"))
	require.NoError(t, a.Element.ExpectVisible(secure.LogoutButton, "logout link"))
}

func TestLoginWithInvalidUsername(t *testing.T) {
	h := Setup(t)
	a := h.NewCase(t)

	require.NoError(t, a.Navigation.Goto(h.URL("/login")))
	login := pages.NewLogin(a.Page())

	require.NoError(t, a.Element.Fill(login.Username, "wronguser", "username"))
	require.NoError(t, a.Element.Fill(login.Password, demoPassword, "password"))
	require.NoError(t, a.Element.Click(login.LoginButton, "login button"))

	require.NoError(t, a.Element.ExpectTextContains(login.FlashMessage,
		"Your username is invalid", "flash message"))
}

func TestLoginWithInvalidPassword(t *testing.T) {
	h := Setup(t)
	a := h.NewCase(t)

	require.NoError(t, a.Navigation.Goto(h.URL("/login")))
	login := pages.NewLogin(a.Page())

	require.NoError(t, a.Element.Fill(login.Username, demoUsername, "username"))
	require.NoError(t, a.Element.Fill(login.Password, "wrongpassword", "password"))
	require.NoError(t, a.Element.Click(login.LoginButton, "login button"))

	require.NoError(t, a.Element.ExpectTextContains(login.FlashMessage,
		"Your password is invalid", "flash message"))
}

func TestLoginFieldsStartEmpty(t *testing.T) {
	h := Setup(t)
	a := h.NewCase(t)

	require.NoError(t, a.Navigation.Goto(h.URL("/login")))
	login := pages.NewLogin(a.Page())

	require.NoError(t, a.Navigation.ExpectTitle("Test Login"))
	require.NoError(t, a.Element.ExpectEmpty(login.Username, "username"))
	require.NoError(t, a.Element.ExpectEmpty(login.Password, "password"))
	require.NoError(t, a.Element.ExpectEnabled(login.LoginButton, "login button"))
}
