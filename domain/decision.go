package domain

// View identifies a client view (screen or route) an identity can
// request. Both client applications share this set.
type View string

const (
	ViewLogin                View = "login"
	ViewPassengerHome        View = "passenger_home"
	ViewDriverHome           View = "driver_home"
	ViewAdminHome            View = "admin_home"
	ViewInstitutionAdminHome View = "institution_admin_home"
	ViewDocumentVerification View = "document_verification"
	ViewInstitutionSelection View = "institution_selection"
	ViewPendingValidation    View = "pending_validation"
	ViewBecomeDriver         View = "become_driver"
	ViewDriverPending        View = "driver_pending"
	ViewTripCreate           View = "trip_create"
	ViewTripSearch           View = "trip_search"
	ViewVehicleRegistration  View = "vehicle_registration"
	ViewProfile              View = "profile"
)

// driverScoped lists the views only validated drivers may enter.
var driverScoped = map[View]bool{
	ViewDriverHome:          true,
	ViewTripCreate:          true,
	ViewVehicleRegistration: true,
}

// IsDriverScoped reports whether the view requires a validated driver.
func (v View) IsDriverScoped() bool {
	return driverScoped[v]
}

// HomeView returns the landing view for a role.
func (r Role) HomeView() View {
	switch r {
	case RoleAdmin:
		return ViewAdminHome
	case RoleInstitutionAdmin:
		return ViewInstitutionAdminHome
	case RoleDriver:
		return ViewDriverHome
	default:
		return ViewPassengerHome
	}
}

// DecisionKind is the outcome of an access decision.
type DecisionKind string

const (
	DecisionAllow    DecisionKind = "allow"
	DecisionRedirect DecisionKind = "redirect"
)

// Redirect reasons, carried alongside the target so clients can choose
// messaging (a denied registration redirects to the same view as a
// pending one, but reads differently).
const (
	ReasonAdminHome           = "admin_home_only"
	ReasonDocumentsRequired   = "documents_required"
	ReasonInstitutionRequired = "institution_required"
	ReasonRegistrationPending = "registration_pending"
	ReasonRegistrationDenied  = "registration_denied"
	ReasonDriverRequired      = "driver_required"
	ReasonDriverPending       = "driver_request_sent"
	ReasonRoleNotAllowed      = "role_not_allowed"
)

// Decision is the result of evaluating a snapshot against a requested
// view: either allow, or redirect to a pipeline view.
type Decision struct {
	Kind   DecisionKind
	Target View
	Reason string
}

// Allowed reports whether the decision grants access.
func (d Decision) Allowed() bool { return d.Kind == DecisionAllow }

func allow() Decision {
	return Decision{Kind: DecisionAllow}
}

func redirect(target View, reason string) Decision {
	return Decision{Kind: DecisionRedirect, Target: target, Reason: reason}
}

// Decide maps a status snapshot plus a requested view to a
// redirect-or-allow decision. Pure function, ordered rules, first match
// wins: the earliest unmet pipeline stage is the one the user sees, so
// an identity that is both undocumented and institution-pending is sent
// to the document step first. Only an explicit validated status ever
// advances a stage; uncertainty redirects.
func Decide(snap StatusSnapshot, requested View) Decision {
	// Administrative roles never hold document or registration rows,
	// so the pipeline checks below would wrongly bounce them.
	if snap.Role.IsAdministrative() {
		if requested != snap.Role.HomeView() {
			return redirect(snap.Role.HomeView(), ReasonAdminHome)
		}
		return allow()
	}

	if !snap.HasDocuments {
		return redirect(ViewDocumentVerification, ReasonDocumentsRequired)
	}

	if !snap.HasInstitution {
		return redirect(ViewInstitutionSelection, ReasonInstitutionRequired)
	}

	switch snap.InstitutionStatus {
	case RegistrationValidated:
		// Stage cleared, fall through to the driver gate.
	case RegistrationDenied:
		return redirect(ViewPendingValidation, ReasonRegistrationDenied)
	default:
		// Pending, or anything unrecognized. Fail closed.
		return redirect(ViewPendingValidation, ReasonRegistrationPending)
	}

	if requested.IsDriverScoped() && snap.DriverStatus != DriverValidated {
		if snap.DriverStatus == DriverPending {
			return redirect(ViewDriverPending, ReasonDriverPending)
		}
		return redirect(ViewBecomeDriver, ReasonDriverRequired)
	}

	return allow()
}
