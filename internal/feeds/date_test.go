package feeds

import "testing"

func TestFormatPublished(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Wed, 31 Dec 2025 16:43:00 +0900", "2025-12-31 수 16시43분 00초"},
		// 2026-01-01 은 목요일이다. 입력의 요일 약어는 검사만 하고 쓰지 않는다.
		{"Wed, 01 Jan 2026 16:43:00 +0900", "2026-01-01 목 16시43분 00초"},
		{"Mon, 5 Jan 2026 09:05:07 +0900", "2026-01-05 월 09시05분 07초"},
		{"Sun, 04 Jan 2026 23:59:59 +09:00", "2026-01-04 일 23시59분 59초"},
		// 오프셋을 그대로 유지(UTC 로 바꾸지 않음)
		{"Sat, 03 Jan 2026 01:00:00 -0500", "2026-01-03 토 01시00분 00초"},
		{"Wed, 31 Dec 2025 16:43:00 Z", "2025-12-31 수 16시43분 00초"},
		// 앞뒤 공백이 있으면 해석하지 않는다
		{" Wed, 31 Dec 2025 16:43:00 +0900", " Wed, 31 Dec 2025 16:43:00 +0900"},
		{"Wed, 31 Dec 2025 16:43:00 +0900\n", "Wed, 31 Dec 2025 16:43:00 +0900\n"},
		{"", ""},
		{"2026-01-01T16:43:00+09:00", "2026-01-01T16:43:00+09:00"},
		{"not a date", "not a date"},
	}
	for _, tt := range tests {
		if got := FormatPublished(tt.input); got != tt.want {
			t.Errorf("FormatPublished(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
