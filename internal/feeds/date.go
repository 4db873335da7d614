package feeds

import "time"

// weekdays 는 월요일=0 기준 요일 표다.
var weekdays = [7]string{"월", "화", "수", "목", "금", "토", "일"}

// pubDateLayouts 는 RSS pubDate 형식이다. 한 자리 일자, 콜론 있는 오프셋, Z 도 받는다.
var pubDateLayouts = []string{
	"Mon, 02 Jan 2006 15:04:05 Z0700",
	"Mon, 2 Jan 2006 15:04:05 Z0700",
	"Mon, 02 Jan 2006 15:04:05 Z07:00",
	"Mon, 2 Jan 2006 15:04:05 Z07:00",
}

// FormatPublished 는 RSS 발행일을 "2006-01-02 수 15시04분 05초" 형태로 바꾼다.
// 시각은 원문 오프셋 그대로 쓴다. 해석에 실패하면 raw 를 그대로 돌려준다.
func FormatPublished(raw string) string {
	t, ok := parsePubDate(raw)
	if !ok {
		return raw
	}
	return t.Format("2006-01-02") + " " + weekdayOf(t) + " " + t.Format("15시04분 05초")
}

// parsePubDate 는 앞뒤 공백을 허용하지 않는다. 공백이 붙은 값은 원문 그대로 남는다.
func parsePubDate(raw string) (time.Time, bool) {
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range pubDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// weekdayOf 는 time.Weekday(일요일=0)를 월요일=0 표 위치로 옮긴다.
func weekdayOf(t time.Time) string {
	return weekdays[(int(t.Weekday())+6)%7]
}
