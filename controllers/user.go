// controllers/user.go
package controllers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"go-foodorder/models"
	"go-foodorder/session"
)

// UserController handles auth transitions, session bootstrap, profile
// and address book requests. All calls proxy the user service through
// the session-bound clients.
type UserController struct {
	sessions *session.Manager
}

// NewUserController creates a new UserController
func NewUserController(sessions *session.Manager) *UserController {
	return &UserController{sessions: sessions}
}

// GetSession reports the session's auth state and cart. The startup
// resolution (bearer token adoption, cart backend load) has already run
// in sessionFrom by the time any handler executes.
func (uc *UserController) GetSession(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(w, r)
	if sess == nil {
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"isAuthenticated": sess.State.IsAuthenticated(),
		"user":            sess.State.User(),
		"cart":            sess.Cart.Cart(),
	})
}

// Login authenticates against the auth service, merges the guest cart
// into the remote one, then switches the cart backend
func (uc *UserController) Login(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(w, r)
	if sess == nil {
		return
	}

	var creds struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}

	result, err := sess.Auth.Login(r.Context(), creds.Email, creds.Password)
	if err != nil {
		http.Error(w, "Invalid email or password", http.StatusUnauthorized)
		return
	}

	sess.State.Login(result.User, result.AccessToken, result.RefreshToken)
	uc.adoptCart(r, sess)

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"user":        result.User,
		"accessToken": result.AccessToken,
		"cart":        sess.Cart.Cart(),
	})
}

// Signup registers a new account and runs the same cart adoption as login
func (uc *UserController) Signup(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(w, r)
	if sess == nil {
		return
	}

	var input struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Phone    string `json:"phone"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}
	if input.Name == "" || input.Email == "" || input.Password == "" {
		http.Error(w, "Name, email and password are required", http.StatusBadRequest)
		return
	}

	result, err := sess.Auth.Signup(r.Context(), input.Name, input.Email, input.Phone, input.Password)
	if err != nil {
		serviceError(w, err)
		return
	}

	sess.State.Login(result.User, result.AccessToken, result.RefreshToken)
	uc.adoptCart(r, sess)

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"user":        result.User,
		"accessToken": result.AccessToken,
		"cart":        sess.Cart.Cart(),
	})
}

// adoptCart runs the one-time guest merge, then makes the server cart
// authoritative. Merge failures lose nothing: the guest snapshot stays
// and the remote cart simply wins.
func (uc *UserController) adoptCart(r *http.Request, sess *session.Session) {
	if err := sess.Cart.MergeGuestCartIntoRemote(r.Context()); err != nil {
		log.Printf("[session] guest cart merge failed: %v", err)
	}
	if err := sess.Cart.SwitchBackend(r.Context(), true); err != nil {
		log.Printf("[session] loading remote cart after login failed: %v", err)
	}
}

// Logout drops the credential, switches back to the guest cart store and
// evicts the session. The next request rebuilds it from the cookie and
// reloads the persisted guest snapshot.
func (uc *UserController) Logout(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(w, r)
	if sess == nil {
		return
	}

	sess.State.Logout()
	if err := sess.Cart.SwitchBackend(r.Context(), false); err != nil {
		log.Printf("[session] switching to guest cart failed: %v", err)
	}
	uc.sessions.Drop(sess.ID)
	writeJSON(w, http.StatusOK, map[string]string{"message": "Logged out"})
}

// GetProfile retrieves the authenticated user's profile
func (uc *UserController) GetProfile(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(w, r)
	if sess == nil {
		return
	}

	user, err := sess.Users.GetProfile(r.Context())
	if err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"user": user})
}

// UpdateProfile updates name and phone on the profile. Completing the
// phone number here unblocks checkout.
func (uc *UserController) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(w, r)
	if sess == nil {
		return
	}

	var input struct {
		Name  string `json:"name"`
		Phone string `json:"phone"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}

	user, err := sess.Users.UpdateProfile(r.Context(), input.Name, input.Phone)
	if err != nil {
		serviceError(w, err)
		return
	}
	sess.State.UpdateUser(*user)
	writeJSON(w, http.StatusOK, map[string]interface{}{"user": user})
}

// GetAddresses lists the user's saved addresses
func (uc *UserController) GetAddresses(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(w, r)
	if sess == nil {
		return
	}

	addresses, err := sess.Users.GetAddresses(r.Context())
	if err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"addresses": addresses})
}

// AddAddress saves a new address on the profile
func (uc *UserController) AddAddress(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(w, r)
	if sess == nil {
		return
	}

	var addr models.Address
	if err := json.NewDecoder(r.Body).Decode(&addr); err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}

	saved, err := sess.Users.AddAddress(r.Context(), addr)
	if err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{"address": saved})
}

// UpdateAddress updates a saved address
func (uc *UserController) UpdateAddress(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(w, r)
	if sess == nil {
		return
	}

	var addr models.Address
	if err := json.NewDecoder(r.Body).Decode(&addr); err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}

	saved, err := sess.Users.UpdateAddress(r.Context(), mux.Vars(r)["id"], addr)
	if err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"address": saved})
}

// DeleteAddress removes a saved address
func (uc *UserController) DeleteAddress(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(w, r)
	if sess == nil {
		return
	}

	if err := sess.Users.DeleteAddress(r.Context(), mux.Vars(r)["id"]); err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Address deleted"})
}

// SetDefaultAddress marks an address as the default for checkout
func (uc *UserController) SetDefaultAddress(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(w, r)
	if sess == nil {
		return
	}

	if err := sess.Users.SetDefaultAddress(r.Context(), mux.Vars(r)["id"]); err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Default address updated"})
}
