package e2e

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/probelab/uiharness/internal/pages"
	"github.com/probelab/uiharness/internal/testdata"
)

func TestRegisterWithGeneratedUser(t *testing.T) {
	h := Setup(t)
	a := h.NewCase(t)

	require.NoError(t, a.Navigation.Goto(h.URL("/register")))
	reg := pages.NewRegister(a.Page())
	user := testdata.ValidUser()

	require.NoError(t, a.Element.Fill(reg.Username, user.Username, "username"))
	require.NoError(t, a.Element.Fill(reg.Password, user.Password, "password"))
	require.NoError(t, a.Element.Fill(reg.ConfirmPassword, user.Password, "confirm password"))
	require.NoError(t, a.Element.Click(reg.RegisterButton, "register button"))

	require.NoError(t, a.Element.ExpectTextContains(reg.FlashMessage,
		"Successfully registered", "flash message"))
}

func TestRegisterRejectsMismatchedPasswords(t *testing.T) {
	h := Setup(t)
	a := h.NewCase(t)

	require.NoError(t, a.Navigation.Goto(h.URL("/register")))
	reg := pages.NewRegister(a.Page())
	user := testdata.ValidUser()

	require.NoError(t, a.Element.Fill(reg.Username, user.Username, "username"))
	require.NoError(t, a.Element.Fill(reg.Password, user.Password, "password"))
	require.NoError(t, a.Element.Fill(reg.ConfirmPassword, user.Password+"x", "confirm password"))
	require.NoError(t, a.Element.Click(reg.RegisterButton, "register button"))

	require.NoError(t, a.Element.ExpectTextContains(reg.FlashMessage,
		"Passwords do not match", "flash message"))
}

func TestRegisterRejectsEmptyUsername(t *testing.T) {
	h := Setup(t)
	a := h.NewCase(t)

	require.NoError(t, a.Navigation.Goto(h.URL("/register")))
	reg := pages.NewRegister(a.Page())

	require.NoError(t, a.Element.Fill(reg.Password, "somepassword123", "password"))
	require.NoError(t, a.Element.Fill(reg.ConfirmPassword, "somepassword123", "confirm password"))
	require.NoError(t, a.Element.Click(reg.RegisterButton, "register button"))

	require.NoError(t, a.Element.ExpectTextContains(reg.FlashMessage,
		"All fields are required", "flash message"))
}
