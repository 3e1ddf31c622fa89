package application

import "testing"

func TestNormalizeStatus(t *testing.T) {
	cases := map[Status]Status{
		"received":     StatusSubmitted,
		"Received":     StatusSubmitted,
		" RECEIVED ":   StatusSubmitted,
		"review":       StatusUnderReview,
		"in_review":    StatusUnderReview,
		"under_review": StatusUnderReview,
		"draft":        StatusDraft,
		"approved":     StatusApproved,
		"Rejected":     StatusRejected,
	}
	for input, want := range cases {
		if got := NormalizeStatus(input); got != want {
			t.Errorf("NormalizeStatus(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestCanTransition(t *testing.T) {
	all := []Status{StatusDraft, StatusSubmitted, StatusUnderReview, StatusInterview, StatusApproved, StatusRejected}
	allowed := map[Status][]Status{
		StatusDraft:       {StatusSubmitted},
		StatusSubmitted:   {StatusUnderReview, StatusInterview, StatusApproved, StatusRejected},
		StatusUnderReview: {StatusInterview, StatusApproved, StatusRejected},
		StatusInterview:   {StatusApproved, StatusRejected},
		StatusApproved:    {},
		StatusRejected:    {},
	}
	for _, from := range all {
		for _, to := range all {
			want := false
			for _, legal := range allowed[from] {
				if legal == to {
					want = true
				}
			}
			if got := CanTransition(from, to); got != want {
				t.Errorf("CanTransition(%s, %s) = %v, want %v", from, to, got, want)
			}
		}
	}
}

func TestTerminalAndEditable(t *testing.T) {
	if !IsTerminal(StatusApproved) || !IsTerminal(StatusRejected) {
		t.Fatalf("approved and rejected must be terminal")
	}
	for _, status := range []Status{StatusDraft, StatusSubmitted, StatusUnderReview, StatusInterview} {
		if IsTerminal(status) {
			t.Errorf("%s must not be terminal", status)
		}
	}
	if !IsEditable(StatusDraft) || !IsEditable(StatusSubmitted) {
		t.Fatalf("draft and submitted must stay editable")
	}
	for _, status := range []Status{StatusUnderReview, StatusInterview, StatusApproved, StatusRejected} {
		if IsEditable(status) {
			t.Errorf("%s must not be editable", status)
		}
	}
}

func TestIsKnownStatus(t *testing.T) {
	for _, status := range []Status{StatusDraft, StatusSubmitted, StatusUnderReview, StatusInterview, StatusApproved, StatusRejected} {
		if !IsKnownStatus(status) {
			t.Errorf("%s should be known", status)
		}
	}
	for _, status := range []Status{"", "received", "pending", "waitlisted"} {
		if IsKnownStatus(status) {
			t.Errorf("%q should not be known without normalization", status)
		}
	}
}
