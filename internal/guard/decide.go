package guard

import (
	"github.com/nayanishant/vegetable-wholesaler/internal/auth"
	"github.com/nayanishant/vegetable-wholesaler/internal/domain"
)

const (
	LoginPath = "/login"
	HomePath  = "/"
)

type Outcome int

const (
	Allow Outcome = iota
	RedirectToLogin
	RedirectToHome
)

func (o Outcome) String() string {
	switch o {
	case RedirectToLogin:
		return "redirect_login"
	case RedirectToHome:
		return "redirect_home"
	default:
		return "allow"
	}
}

// Location is the redirect target for o, empty for Allow.
func (o Outcome) Location() string {
	switch o {
	case RedirectToLogin:
		return LoginPath
	case RedirectToHome:
		return HomePath
	default:
		return ""
	}
}

// Decide applies the access rules to a path classification. A nil session or
// one with an unrecognised role is treated as anonymous.
func Decide(session *auth.Session, class Classification) Outcome {
	if class == Public {
		return Allow
	}
	if session == nil || !session.Role.Valid() {
		return RedirectToLogin
	}
	if class == AdminOnly && session.Role != domain.RoleAdmin {
		return RedirectToHome
	}
	return Allow
}

// Evaluate classifies path against t and decides the outcome for session.
func Evaluate(session *auth.Session, path string, t Table) Outcome {
	return Decide(session, t.Classify(path))
}
