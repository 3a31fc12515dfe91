package booking

// StatusEmpty is the presentation sentinel for a slot with no artist
// assigned. It is not a workflow state.
const StatusEmpty = "EMPTY"

// Display labels are a pure presentation-boundary lookup. The workflow runs
// on the canonical codes; callers translate at render time. Unknown codes
// pass through verbatim so schema drift degrades visibly instead of failing.
var statusLabels = map[string]map[string]string{
	"en": {
		string(StatusOpen):      "Draft",
		string(StatusPending):   "Awaiting response",
		string(StatusAccepted):  "Accepted",
		string(StatusRejected):  "Rejected",
		string(StatusConfirmed): "Confirmed",
		string(StatusDeclined):  "Declined",
		string(StatusCancelled): "Cancelled",
		StatusEmpty:             "No artist assigned",
	},
	"es": {
		string(StatusOpen):      "Borrador",
		string(StatusPending):   "Pendiente de respuesta",
		string(StatusAccepted):  "Aceptada",
		string(StatusRejected):  "Rechazada",
		string(StatusConfirmed): "Confirmada",
		string(StatusDeclined):  "Declinada",
		string(StatusCancelled): "Cancelada",
		StatusEmpty:             "Sin artista asignado",
	},
}

// DisplayLabel translates a status code for the given locale. Unknown
// locales fall back to English; unknown codes are returned as-is.
func DisplayLabel(code, locale string) string {
	labels, ok := statusLabels[locale]
	if !ok {
		labels = statusLabels["en"]
	}
	if label, ok := labels[code]; ok {
		return label
	}
	return code
}
