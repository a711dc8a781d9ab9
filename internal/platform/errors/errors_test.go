package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestErrorIsMatchesByCode(t *testing.T) {
	err := New(CodeNotYourTurn, "player 2 attempted a roll")
	if !stderrors.Is(err, New(CodeNotYourTurn, "different message")) {
		t.Fatal("expected errors with the same code to match")
	}
	if stderrors.Is(err, New(CodeInvalidPhase, "player 2 attempted a roll")) {
		t.Fatal("expected errors with different codes not to match")
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := fmt.Errorf("disk full")
	err := Wrap(CodeNotFound, "load session", cause)
	if !stderrors.Is(err, cause) {
		t.Fatal("expected wrapped cause to be reachable via errors.Is")
	}
	if err.Error() != "load session" {
		t.Fatalf("expected internal message, got %q", err.Error())
	}
}

func TestGRPCCodeMapping(t *testing.T) {
	tests := []struct {
		code Code
		want codes.Code
	}{
		{CodeNotYourTurn, codes.FailedPrecondition},
		{CodeInvalidPhase, codes.FailedPrecondition},
		{CodeSessionNotActive, codes.FailedPrecondition},
		{CodeRosterInvalid, codes.InvalidArgument},
		{CodeDiceInvalidSpec, codes.InvalidArgument},
		{CodeTileNotFound, codes.NotFound},
		{CodeNotFound, codes.NotFound},
		{CodeUnknown, codes.Internal},
	}
	for _, tt := range tests {
		if got := tt.code.GRPCCode(); got != tt.want {
			t.Errorf("%s: got %v, want %v", tt.code, got, tt.want)
		}
	}
}

func TestToGRPCStatusAttachesDetails(t *testing.T) {
	err := WithMetadata(CodeTileNotFound, "tile lookup failed", map[string]string{"position": "42"})
	stErr := err.ToGRPCStatus("en-US", "No tile exists at that board position (42)")

	st, ok := status.FromError(stErr)
	if !ok {
		t.Fatal("expected a grpc status error")
	}
	if st.Code() != codes.NotFound {
		t.Fatalf("expected NotFound, got %v", st.Code())
	}

	var foundInfo, foundLocalized bool
	for _, detail := range st.Details() {
		switch d := detail.(type) {
		case *errdetails.ErrorInfo:
			foundInfo = true
			if d.Reason != string(CodeTileNotFound) {
				t.Fatalf("expected reason %s, got %s", CodeTileNotFound, d.Reason)
			}
			if d.Metadata["position"] != "42" {
				t.Fatalf("expected position metadata, got %v", d.Metadata)
			}
		case *errdetails.LocalizedMessage:
			foundLocalized = true
			if d.Locale != "en-US" {
				t.Fatalf("expected en-US locale, got %s", d.Locale)
			}
		}
	}
	if !foundInfo || !foundLocalized {
		t.Fatal("expected ErrorInfo and LocalizedMessage details")
	}
}
