// Package metadata derives a photo's captured-at timestamp from its bytes or
// its filename. The chain is pure and never fails: malformed input simply
// yields no result.
package metadata

import (
	"bytes"
	"regexp"
	"time"

	"github.com/rwcarlsen/goexif/exif"
)

const exifLayout = "2006:01:02 15:04:05"

// Filenames such as KakaoTalk_20250410_215409275.jpg embed the capture date
// right after the vendor prefix.
var kakaoPattern = regexp.MustCompile(`^KakaoTalk_(\d{8})_`)

// CapturedAt returns the time a photo was taken, trying the embedded EXIF
// original-capture date first and the filename convention second. The boolean
// is false when neither source yields a date; callers substitute their own
// clock.
func CapturedAt(data []byte, filename string) (time.Time, bool) {
	if t, ok := fromExif(data); ok {
		return t, true
	}
	return fromFilename(filename)
}

func fromExif(data []byte) (time.Time, bool) {
	if len(data) == 0 {
		return time.Time{}, false
	}

	x, err := exif.Decode(bytes.NewReader(data))
	if err != nil {
		return time.Time{}, false
	}

	tag, err := x.Get(exif.DateTimeOriginal)
	if err != nil {
		return time.Time{}, false
	}

	raw, err := tag.StringVal()
	if err != nil {
		return time.Time{}, false
	}

	t, err := time.Parse(exifLayout, raw)
	if err != nil {
		return time.Time{}, false
	}

	return t.UTC(), true
}

func fromFilename(filename string) (time.Time, bool) {
	m := kakaoPattern.FindStringSubmatch(filename)
	if m == nil {
		return time.Time{}, false
	}

	t, err := time.ParseInLocation("20060102", m[1], time.UTC)
	if err != nil {
		return time.Time{}, false
	}

	return t, true
}
