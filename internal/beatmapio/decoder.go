// Package beatmapio decodes the sectioned beatmap text format described by
// spec §6: [General], [Difficulty], [Events], [TimingPoints], [HitObjects].
// Only the subset the difficulty/performance pipeline consumes is parsed;
// everything else ([Events] storyboard commands, [Colours], metadata) is
// skipped.
package beatmapio

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/wieku/starcalc/app/beatmap"
	"github.com/wieku/starcalc/app/beatmap/difficulty"
	"github.com/wieku/starcalc/app/beatmap/objects"
	"github.com/wieku/starcalc/framework/math/vector"
)

const maxCoordinate = 131072
const maxRepeats = 9000

// Decode parses a beatmap file from r. Older files are sometimes saved in a
// legacy Windows-1252 encoding rather than UTF-8; when the raw bytes are not
// valid UTF-8 anywhere in the file, decodeBytes converts the whole file with
// decodeLegacy before parsing, whatever its format version.
func Decode(r io.Reader) (*beatmap.BeatMap, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	bm, err := decodeBytes(raw)
	if err != nil {
		return nil, err
	}

	return bm, nil
}

func decodeBytes(raw []byte) (*beatmap.BeatMap, error) {
	bm := beatmap.NewBeatMap()

	text := string(raw)
	if !isValidUTF8(text) {
		legacy, decodeErr := decodeLegacy(raw)
		if decodeErr == nil {
			text = legacy
		}
	}

	scanner := bufio.NewScanner(strings.NewReader(text))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	section := ""
	hitSounds := make([]uint8, 0, 512)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "//") {
			continue
		}

		if strings.HasPrefix(line, "osu file format v") {
			v, _ := strconv.Atoi(strings.TrimPrefix(line, "osu file format v"))
			bm.FormatVersion = v

			continue
		}

		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			section = strings.Trim(line, "[]")
			continue
		}

		var err error

		switch section {
		case "General":
			err = parseGeneral(bm, line)
		case "Difficulty":
			err = parseDifficulty(bm, line)
		case "TimingPoints":
			err = parseTimingPoint(bm, line)
		case "HitObjects":
			var sound uint8
			sound, err = parseHitObject(bm, line)
			hitSounds = append(hitSounds, sound)
		}

		if err != nil {
			return nil, &difficulty.ParseError{Section: section, Line: line, Err: err}
		}
	}

	bm.HitSounds = hitSounds
	bm.Control.Sort()

	return bm, scanner.Err()
}

func isValidUTF8(s string) bool {
	for _, r := range s {
		if r == '�' {
			return false
		}
	}

	return true
}

func decodeLegacy(raw []byte) (string, error) {
	decoder := charmap.Windows1252.NewDecoder()

	out, _, err := transform.Bytes(decoder, raw)
	if err != nil {
		return "", err
	}

	return string(out), nil
}

func parseGeneral(bm *beatmap.BeatMap, line string) error {
	key, value, ok := splitColon(line)
	if !ok {
		return nil
	}

	switch key {
	case "Mode":
		n, err := strconv.Atoi(value)
		if err != nil {
			return err
		}

		bm.Mode = beatmap.Mode(n)
	case "StackLeniency":
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return err
		}

		bm.StackLeniency = v
		bm.Diff.StackLeniency = v
	}

	return nil
}

func parseDifficulty(bm *beatmap.BeatMap, line string) error {
	key, value, ok := splitColon(line)
	if !ok {
		return nil
	}

	v, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return err
	}

	switch key {
	case "CircleSize":
		bm.Diff.CS = v
	case "OverallDifficulty":
		bm.Diff.OD = v
	case "ApproachRate":
		bm.Diff.AR = v
	case "HPDrainRate":
		bm.Diff.HP = v
	case "SliderMultiplier":
		bm.Diff.SliderMultiplier = v
	case "SliderTickRate":
		bm.Diff.SliderTickRate = v
	}

	return nil
}

func splitColon(line string) (key, value string, ok bool) {
	idx := strings.IndexByte(line, ':')
	if idx < 0 {
		return "", "", false
	}

	return strings.TrimSpace(line[:idx]), strings.TrimSpace(line[idx+1:]), true
}

func parseTimingPoint(bm *beatmap.BeatMap, line string) error {
	fields := strings.Split(line, ",")
	if len(fields) < 2 {
		return fmt.Errorf("timing point needs at least time,beatLength")
	}

	time, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return err
	}

	beatLen, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return err
	}

	if math.IsNaN(beatLen) {
		return fmt.Errorf("NaN beat length in timing change point")
	}

	uninherited := true
	if len(fields) >= 7 {
		uninherited = fields[6] == "1"
	}

	if uninherited {
		if math.IsNaN(beatLen) {
			return fmt.Errorf("NaN beat length in uninherited point")
		}

		bm.Control.AddTiming(time, beatLen)
	} else {
		bm.Control.Difficulty = append(bm.Control.Difficulty, difficulty.DifficultyPoint{
			Time:           time,
			SliderVelocity: bpmMultiplierFromBeatLen(beatLen),
			GenerateTicks:  true,
		})
	}

	effectFlags := 0
	if len(fields) >= 8 {
		effectFlags, _ = strconv.Atoi(fields[7])
	}

	scrollSpeed := 1.0
	if !uninherited {
		scrollSpeed = bpmMultiplierFromBeatLen(beatLen)
	}

	bm.Control.Effect = append(bm.Control.Effect, difficulty.EffectPoint{
		Time:        time,
		Kiai:        effectFlags&1 != 0,
		ScrollSpeed: scrollSpeed,
	})

	return nil
}

func bpmMultiplierFromBeatLen(beatLen float64) float64 {
	if beatLen < 0 {
		return -100 / beatLen
	}

	return 1
}

func parseHitObject(bm *beatmap.BeatMap, line string) (uint8, error) {
	fields := strings.Split(line, ",")
	if len(fields) < 4 {
		return 0, fmt.Errorf("hit object needs at least x,y,time,type")
	}

	x, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return 0, err
	}

	y, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return 0, err
	}

	x = clampCoord(x)
	y = clampCoord(y)

	startTime, err := strconv.ParseFloat(fields[2], 64)
	if err != nil {
		return 0, err
	}

	typeBits, err := strconv.Atoi(fields[3])
	if err != nil {
		return 0, err
	}

	soundVal := 0
	if len(fields) >= 5 {
		soundVal, _ = strconv.Atoi(fields[4])
	}

	h := &objects.HitObject{
		StartTime: startTime,
		NewCombo:  typeBits&0x4 != 0,
		Pos:       vec(x, y),
		HitSound:  uint8(soundVal),
	}

	switch {
	case typeBits&0x1 != 0:
		h.Type = objects.TypeCircle
		h.EndTime = startTime
	case typeBits&0x2 != 0:
		h.Type = objects.TypeSlider

		if err := parseSliderBody(h, fields); err != nil {
			return 0, err
		}
	case typeBits&0x8 != 0:
		h.Type = objects.TypeSpinner

		if len(fields) >= 6 {
			end, err := strconv.ParseFloat(fields[5], 64)
			if err != nil {
				return 0, err
			}

			h.EndTime = end
		}
	case typeBits&0x80 != 0:
		h.Type = objects.TypeHold

		if len(fields) >= 6 {
			params := strings.Split(fields[5], ":")

			end, err := strconv.ParseFloat(params[0], 64)
			if err != nil {
				return 0, err
			}

			h.EndTime = end
		}

		h.Column = columnFromX(bm, x)
	}

	bm.HitObjects = append(bm.HitObjects, h)

	return uint8(soundVal), nil
}

func columnFromX(bm *beatmap.BeatMap, x float64) int {
	columns := int(math.Round(bm.Diff.CS))
	if columns < 1 {
		columns = 1
	}

	col := int(x * float64(columns) / 512.0)
	if col < 0 {
		col = 0
	}

	if col >= columns {
		col = columns - 1
	}

	return col
}

func parseSliderBody(h *objects.HitObject, fields []string) error {
	curveField := fields[5]
	curveParts := strings.Split(curveField, "|")

	h.CurveType = curveTypeFromChar(curveParts[0])

	h.ControlPoints = append(h.ControlPoints, objects.ControlPoint{Pos: vec(float64(h.Pos.X), float64(h.Pos.Y))})

	for _, p := range curveParts[1:] {
		coords := strings.Split(p, ":")
		if len(coords) != 2 {
			continue
		}

		px, err := strconv.ParseFloat(coords[0], 64)
		if err != nil {
			return err
		}

		py, err := strconv.ParseFloat(coords[1], 64)
		if err != nil {
			return err
		}

		h.ControlPoints = append(h.ControlPoints, objects.ControlPoint{Pos: vec(clampCoord(px), clampCoord(py))})
	}

	repeats, err := strconv.Atoi(fields[6])
	if err != nil {
		return err
	}

	if repeats > maxRepeats {
		return fmt.Errorf("repeat count %d exceeds maximum %d", repeats, maxRepeats)
	}

	h.Repeats = repeats - 1
	if h.Repeats < 0 {
		h.Repeats = 0
	}

	if len(fields) >= 8 {
		dist, err := strconv.ParseFloat(fields[7], 64)
		if err == nil {
			h.ExpectedDist = dist
			h.HasExpectedDist = true
		}
	}

	if len(fields) >= 9 {
		edgeSounds := strings.Split(fields[8], "|")
		for _, s := range edgeSounds {
			n, _ := strconv.Atoi(s)
			h.NodeSounds = append(h.NodeSounds, objects.SliderNodeSound(n))
		}
	}

	return nil
}

func curveTypeFromChar(c string) objects.CurveType {
	switch c {
	case "B":
		return objects.CurveBezier
	case "C":
		return objects.CurveCatmull
	case "L":
		return objects.CurveLinear
	case "P":
		return objects.CurvePerfect
	default:
		return objects.CurveBezier
	}
}

func clampCoord(v float64) float64 {
	if v < -maxCoordinate {
		return -maxCoordinate
	}

	if v > maxCoordinate {
		return maxCoordinate
	}

	return v
}

func vec(x, y float64) vector.Vector2f {
	return vector.NewVec2f(float32(x), float32(y))
}
