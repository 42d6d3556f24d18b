package provision

// State holds the shared results of provisioning phases.
// It is progressively populated as each phase completes and is passed
// to subsequent phases that need earlier results.
type State struct {
	// Python results (populated by the python provisioner)
	PipVersion      string   // pip version after bootstrap
	InstalledPinned string   // accelerator requirement actually installed
	InstalledExtras []string // auxiliary libraries installed

	// Dataset results (populated by the dataset provisioner)
	DataDir    string   // absolute path of the data directory
	Downloaded []string // archive paths written by the fetch phase
	Extracted  []string // file paths produced by the extract phase
}

// NewState creates an empty provisioning state.
func NewState() *State {
	return &State{}
}
