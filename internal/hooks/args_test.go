package hooks

import "testing"

func TestParseArgs(t *testing.T) {
	argv := []string{
		"api:2",
		"args:task 1 done",
		"command:done",
		"rc:/home/u/.taskrc",
		"data:/home/u/.task",
		"version:2.6.2",
	}

	want := Args{
		API:     "2",
		Args:    "task 1 done",
		Command: "done",
		RC:      "/home/u/.taskrc",
		Data:    "/home/u/.task",
		Version: "2.6.2",
	}
	if got := ParseArgs(argv); got != want {
		t.Errorf("ParseArgs() = %+v, want %+v", got, want)
	}
}

func TestParseArgsIgnoresUnknown(t *testing.T) {
	// value keeps everything after the first colon
	got := ParseArgs([]string{"noise", "extra:thing", "data:C:/Users/u/.task", "--flag"})
	if want := (Args{Data: "C:/Users/u/.task"}); got != want {
		t.Errorf("ParseArgs() = %+v, want %+v", got, want)
	}

	if got := ParseArgs(nil); got != (Args{}) {
		t.Errorf("ParseArgs(nil) = %+v, want zero Args", got)
	}
}
