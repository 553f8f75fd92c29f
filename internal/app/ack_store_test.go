package app

import "testing"

func TestAckStoreTogglePerWorkOrder(t *testing.T) {
	s := NewAckStore()
	s.Toggle("WO-0001", ackTechnical)
	if !s.Checked("WO-0001", ackTechnical) {
		t.Fatalf("expected technical ack checked for WO-0001")
	}
	if s.Checked("WO-0002", ackTechnical) {
		t.Fatalf("expected WO-0002 unaffected by WO-0001 toggle")
	}
	s.Toggle("WO-0001", ackTechnical)
	if s.Checked("WO-0001", ackTechnical) {
		t.Fatalf("expected second toggle to uncheck")
	}
}

func TestAckStoreAllCheckedRequiresEveryGate(t *testing.T) {
	s := NewAckStore()
	if s.AllChecked("WO-0007") {
		t.Fatalf("expected unchecked work order to report false")
	}
	s.Toggle("WO-0007", ackTechnical)
	s.Toggle("WO-0007", ackServiceLevel)
	if s.AllChecked("WO-0007") {
		t.Fatalf("expected two of three gates to report false")
	}
	s.Toggle("WO-0007", ackCustomerCosts)
	if !s.AllChecked("WO-0007") {
		t.Fatalf("expected all three gates to report true")
	}
}

func TestAckStoreClear(t *testing.T) {
	s := NewAckStore()
	s.Toggle("WO-0007", ackTechnical)
	s.Toggle("WO-0007", ackServiceLevel)
	s.Toggle("WO-0007", ackCustomerCosts)
	s.Clear("WO-0007")
	if s.AllChecked("WO-0007") {
		t.Fatalf("expected clear to drop acknowledgements")
	}
	if s.Checked("WO-0007", ackTechnical) {
		t.Fatalf("expected reopened work order to start unchecked")
	}
}
