package rendering

import "github.com/nextlevelcleaning/cards/internal/page"

// Placeholder texts shipped in the template.
const (
	LoadingName  = "Loading..."
	LoadingRole  = "Please wait..."
	TemplateName = "TEMPLATE NAME"
	TemplateRole = "TEMPLATE ROLE"
)

// ErrorKind selects the texts written by ShowError.
type ErrorKind int

// Error states a card can be put in.
const (
	// ErrorInvalidPage: no identity could be derived from the URL.
	ErrorInvalidPage ErrorKind = iota
	// ErrorTemplatePage: the development template was opened; no data is loaded.
	ErrorTemplatePage
	// ErrorLoadFailed: every data location failed.
	ErrorLoadFailed
	// ErrorIncompleteRecord: the record loaded but left the name or role slot unfilled.
	ErrorIncompleteRecord
)

var errorTexts = map[ErrorKind][2]string{
	ErrorInvalidPage:      {"ERROR: Invalid page", "This URL is incorrect"},
	ErrorTemplatePage:     {"ERROR: Data not loaded", "Please refresh the page"},
	ErrorLoadFailed:       {"ERROR: Could not load data", "Please check console and refresh"},
	ErrorIncompleteRecord: {"ERROR: Incomplete profile", "Profile name or role missing"},
}

// ErrorTexts returns the name and role texts for kind.
func ErrorTexts(kind ErrorKind) (name, role string) {
	t := errorTexts[kind]
	return t[0], t[1]
}

// State is the visible state of a card page.
type State string

// Card page states, distinguishable from the name slot alone.
const (
	StateLoading   State = "loading"
	StateTemplate  State = "template"
	StateError     State = "error"
	StatePopulated State = "populated"
	StateUnknown   State = "unknown"
)

// IsSentinel reports whether text is one of the placeholder or error texts that must never
// remain in a populated name or role slot.
func IsSentinel(text string) bool {
	switch text {
	case LoadingName, LoadingRole, TemplateName, TemplateRole:
		return true
	}
	for _, t := range errorTexts {
		if text == t[0] || text == t[1] {
			return true
		}
	}
	return false
}

// ShowError writes the texts for kind into the name and role slots.
func ShowError(s page.Surface, kind ErrorKind) {
	name, role := ErrorTexts(kind)
	if el := s.Slot(page.SlotStaffName); el != nil {
		el.SetText(name)
	}
	if el := s.Slot(page.SlotStaffRole); el != nil {
		el.SetText(role)
	}
}

// StateOf reports which state the page is visibly in.
func StateOf(s page.Surface) State {
	el := s.Slot(page.SlotStaffName)
	if el == nil {
		return StateUnknown
	}
	switch text := el.Text(); text {
	case LoadingName:
		return StateLoading
	case TemplateName:
		return StateTemplate
	case "":
		return StateUnknown
	default:
		for _, t := range errorTexts {
			if text == t[0] {
				return StateError
			}
		}
		return StatePopulated
	}
}
