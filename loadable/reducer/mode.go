package reducer

// LoadingMode selects how a paginated loadable merges a freshly loaded page
// into its current collection.
type LoadingMode int

const (
	// UpsertNext loads the page after the current collection's last page
	// and appends it. If there is no next page, the load is skipped
	// entirely (classified as cancellation, not failure).
	UpsertNext LoadingMode = iota
	// UpsertFirst loads the first page and merges it in front of the
	// current collection, preserving the collection's existing NextPage.
	UpsertFirst
	// Reload loads the first page and replaces the current collection
	// outright.
	Reload
)

// String renders the mode for logging.
func (m LoadingMode) String() string {
	switch m {
	case UpsertNext:
		return "upsertNext"
	case UpsertFirst:
		return "upsertFirst"
	case Reload:
		return "reload"
	default:
		return "unknown"
	}
}
