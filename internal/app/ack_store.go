package app

// Acknowledgement gates for the approval action. All three must be checked
// before an approval decision can be submitted.
type ackGate int

const (
	ackTechnical ackGate = iota
	ackServiceLevel
	ackCustomerCosts
	ackGateCount
)

func (g ackGate) Label() string {
	switch g {
	case ackTechnical:
		return "Technical completion reviewed"
	case ackServiceLevel:
		return "Service level verified"
	case ackCustomerCosts:
		return "Customer costs confirmed"
	default:
		return ""
	}
}

// AckStore keeps per-work-order acknowledgement checkboxes. The state lives
// beside the work order records, not on them, and is never persisted to
// disk; it is dropped when the popup closes or the decision resolves.
type AckStore struct {
	acks map[string]*[ackGateCount]bool
}

func NewAckStore() *AckStore {
	return &AckStore{acks: map[string]*[ackGateCount]bool{}}
}

func (s *AckStore) Toggle(workOrderID string, gate ackGate) {
	if s == nil || workOrderID == "" || gate < 0 || gate >= ackGateCount {
		return
	}
	entry, ok := s.acks[workOrderID]
	if !ok {
		entry = &[ackGateCount]bool{}
		s.acks[workOrderID] = entry
	}
	entry[gate] = !entry[gate]
}

func (s *AckStore) Checked(workOrderID string, gate ackGate) bool {
	if s == nil || gate < 0 || gate >= ackGateCount {
		return false
	}
	entry, ok := s.acks[workOrderID]
	if !ok {
		return false
	}
	return entry[gate]
}

func (s *AckStore) AllChecked(workOrderID string) bool {
	if s == nil {
		return false
	}
	entry, ok := s.acks[workOrderID]
	if !ok {
		return false
	}
	for _, checked := range entry {
		if !checked {
			return false
		}
	}
	return true
}

// Clear drops the acknowledgements for one work order. Called when its
// approval resolves or its popup closes, so a reopened popup starts clean.
func (s *AckStore) Clear(workOrderID string) {
	if s == nil {
		return
	}
	delete(s.acks, workOrderID)
}
