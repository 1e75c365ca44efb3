package core

// Tool identifies one of the independent document views a file can be opened
// in. Each tool kind owns a distinct reserved name in the file store (its
// session snapshot) so concurrent tools never collide.
type Tool string

const (
	// ToolSign is the signature placement view.
	ToolSign Tool = "sign"
	// ToolEdit is the annotation / editing view.
	ToolEdit Tool = "edit"
)

// SnapshotName returns the reserved file-store name holding "the document
// currently open in this tool". Exactly one snapshot name is active per tool
// kind; a readable blob at this name means a session is resumable.
func (t Tool) SnapshotName() string { return "session-" + string(t) + ".pdf" }

// DisplayName returns the human-readable tool name recorded in history
// entries.
func (t Tool) DisplayName() string {
	switch t {
	case ToolSign:
		return "Sign PDF"
	case ToolEdit:
		return "Edit PDF"
	default:
		return string(t)
	}
}
