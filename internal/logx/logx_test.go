package logx

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestPrettyKorean(t *testing.T) {
	var buf bytes.Buffer
	InitWriter(&buf, "debug", "pretty", "ko", "never")
	Infof("확인 중: %d/%d", 1, 3)
	Debugf("검색 요청")
	out := buf.String()
	if !strings.Contains(out, "[정보] 확인 중: 1/3") {
		t.Fatalf("expect ko info label, got: %q", out)
	}
	if !strings.Contains(out, "[디버그]") {
		t.Fatalf("expect ko debug label, got: %q", out)
	}
	if strings.Contains(out, "\x1b[") {
		t.Fatalf("color must be off with LOG_COLOR=never: %q", out)
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	InitWriter(&buf, "warn", "pretty", "ko", "never")
	Infof("should not print")
	Warnf("경고 메시지")
	out := buf.String()
	if strings.Contains(out, "should not print") {
		t.Fatalf("info should be filtered when level=warn")
	}
	if !strings.Contains(out, "[경고]") {
		t.Fatalf("expect warn label, got: %q", out)
	}
}

func TestSilent(t *testing.T) {
	var buf bytes.Buffer
	InitWriter(&buf, "off", "pretty", "en", "never")
	Errorf("nothing")
	if buf.Len() != 0 {
		t.Fatalf("expect no output, got: %q", buf.String())
	}
}

func TestEnglishLabelsAndJSON(t *testing.T) {
	var buf bytes.Buffer
	InitWriter(&buf, "info", "pretty", "en", "never")
	Errorf("failed")
	if !strings.Contains(buf.String(), "[ERROR] failed") {
		t.Fatalf("expect en label, got: %q", buf.String())
	}

	buf.Reset()
	InitWriter(&buf, "info", "json", "", "")
	Infof("hello %s", "json")
	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("decode json log: %v (%q)", err, buf.String())
	}
	if rec["msg"] != "hello json" {
		t.Fatalf("msg = %v", rec["msg"])
	}
}
