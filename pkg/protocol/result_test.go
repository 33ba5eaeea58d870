package protocol

import "testing"

func TestResultCodeSubsystem(t *testing.T) {
	cases := []struct {
		code ResultCode
		want Subsystem
	}{
		{ResultSuccess, SubsystemEngine},
		{ResultBufferOverflow, SubsystemEngine},
		{ResultCode(999), SubsystemEngine},
		{ResultEventLoopNotReady, SubsystemWindow},
		{ResultWindowCreateError, SubsystemWindow},
		{ResultCode(1999), SubsystemWindow},
		{ResultGraphicsInstanceError, SubsystemGraphics},
		{ResultMalformedBatch, SubsystemCommand},
		{ResultCode(3999), SubsystemCommand},
		{ResultCode(4000), SubsystemReserved},
		{ResultCode(99999), SubsystemReserved},
	}
	for _, c := range cases {
		if got := c.code.Subsystem(); got != c.want {
			t.Errorf("ResultCode(%d).Subsystem() = %v; want %v", c.code, got, c.want)
		}
	}
}

func TestResultCodeString(t *testing.T) {
	if got := ResultSuccess.String(); got != "Success" {
		t.Errorf("ResultSuccess.String() = %q", got)
	}
	if got := ResultWrongThread.String(); got != "WrongThread" {
		t.Errorf("ResultWrongThread.String() = %q", got)
	}
	// Unknown codes keep their range context.
	if got := ResultCode(2042).String(); got != "Graphics(2042)" {
		t.Errorf("ResultCode(2042).String() = %q", got)
	}
}

func TestResultCodeOK(t *testing.T) {
	if !ResultSuccess.OK() {
		t.Errorf("ResultSuccess not OK")
	}
	if ResultUnknownError.OK() {
		t.Errorf("ResultUnknownError reports OK")
	}
}
