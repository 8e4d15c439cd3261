package model

type ChecklistItem struct {
	ID   string `json:"id"`
	Text string `json:"text"`
	On   bool   `json:"on"`
}

// ChecklistState is the complete, ordered checklist as returned by a checklist source.
// It is never a delta.
type ChecklistState struct {
	Items []ChecklistItem `json:"items"`
}

// Find returns the item with the given id.
func (s ChecklistState) Find(id string) (ChecklistItem, bool) {
	for _, it := range s.Items {
		if it.ID == id {
			return it, true
		}
	}
	return ChecklistItem{}, false
}

// AllOn reports whether every item is checked. An empty checklist counts as complete.
func (s ChecklistState) AllOn() bool {
	for _, it := range s.Items {
		if !it.On {
			return false
		}
	}
	return true
}

type SessionData struct {
	Goal      string `json:"goal"`
	StartTime uint64 `json:"start_time"`
	// TimeExpected is in minutes.
	TimeExpected       uint64  `json:"time_expected"`
	ReflectionFilePath *string `json:"reflection_file_path,omitempty"`
}

type AnalysisResult struct {
	Summary    string `json:"summary"`
	Suggestion string `json:"suggestion"`
	Reasoning  string `json:"reasoning"`
}
