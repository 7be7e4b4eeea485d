package reaction

import (
	"math/rand"
	"regexp"
	"strconv"
	"strings"
)

// Canned first-person reactions for the local classifier.
var creativeReactions = map[string][]string{
	"positive": {
		"Yay! That's amazing! \U0001F389 I want to dance!",
		"Wow! The world is getting better! ✨",
		"How wonderful! Now I have a reason to be happy! \U0001F31F",
		"Whoa! That's inspiring! I could move mountains! \U0001F4AA",
		"Super! Fully charged with positivity! ⚡",
		"I love news like this! \U0001F970",
		"Best news of the day! \U0001F3C6",
	},
	"negative": {
		"Oh... that's so sad... \U0001F494 I need a hug",
		"Ah... the world can be so hard sometimes... \U0001F614",
		"Poor thing... I hope it all works out... \U0001FAC2",
		"Such a pity... I wish I could help, but I'm just a little cat... \U0001F43E",
		"Oh... that's heavy to hear... \U0001F499",
		"Sad... but we'll get through it! Together! ✊",
		"I don't want it to be like this... \U0001F97A",
	},
	"neutral": {
		"Hmm... I wonder what happens next? \U0001F914",
		"I'll remember that... might come in handy! \U0001F4DD",
		"Curious... tell me more! \U0001F442",
		"Oh, news! Let me think about it... \U0001F9E0",
		"Sounds important... thanks for sharing! \U0001F64F",
		"Noted! \U0001F4CB",
	},
}

// Keyword stems for the news lexicon. The configured sources are
// Russian-language, so the stems are too.
var (
	positiveStems = []string{
		"рост", "успех", "побед", "помощ", "развит", "инвест", "доход", "прибыль",
		"спас", "нашёл", "откры", "снизил", "поддерж", "хорош", "рад", "рекорд",
		"выгод", "прорыв", "достиж", "благодар", "праздник", "подар", "запусти", "стартов",
	}
	negativeStems = []string{
		"паден", "кризис", "убыток", "потер", "авар", "смерт", "конфликт", "войн",
		"угроз", "проблем", "ошиб", "отказ", "подорож", "инфляц", "сокращ", "запрет",
		"крах", "трагед", "катастроф", "преступ", "нападен",
	}
)

var tempRe = regexp.MustCompile(`(?i)(-?\d+(?:\.\d+)?)\s*°c`)

func pick(group string) string {
	opts := creativeReactions[group]
	return opts[rand.Intn(len(opts))]
}

// randBetween returns a random int in [lo,hi].
func randBetween(lo, hi int) int {
	return lo + rand.Intn(hi-lo+1)
}

// localReaction is the fallback classifier: a keyword-scored lexicon for
// news and a temperature/condition table for weather. The Analyzer
// normalizes the output, so the contract holds here too.
func localReaction(text string, kind Kind) Result {
	t := strings.ToLower(text)

	if kind == KindWeather {
		return localWeatherReaction(t)
	}

	pos, neg := 0, 0
	for _, stem := range positiveStems {
		if strings.Contains(t, stem) {
			pos += 2
		}
	}
	for _, stem := range negativeStems {
		if strings.Contains(t, stem) {
			neg += 2
		}
	}
	if strings.Contains(text, "!") {
		pos++
	}
	if strings.Contains(text, "?") {
		neg++
	}

	switch {
	case pos > neg+2:
		return Result{Reaction: pick("positive"), MoodChange: randBetween(10, 20), IsPositive: true}
	case neg > pos+2:
		return Result{Reaction: pick("negative"), MoodChange: randBetween(-20, -8), IsPositive: false}
	default:
		// Neutral headlines still get a slight random tint.
		if rand.Float64() < 0.6 {
			return Result{Reaction: pick("neutral"), MoodChange: randBetween(3, 8), IsPositive: true}
		}
		return Result{Reaction: pick("negative"), MoodChange: randBetween(-6, -2), IsPositive: false}
	}
}

func localWeatherReaction(t string) Result {
	temp, hasTemp := parseTemp(t)

	switch {
	case strings.Contains(t, "sunny") || (hasTemp && temp >= 22 && temp < 30):
		return Result{Reaction: pick("positive"), MoodChange: randBetween(12, 18), IsPositive: true}
	case strings.Contains(t, "rain") || strings.Contains(t, "snow"):
		return Result{Reaction: pick("negative"), MoodChange: randBetween(-12, -6), IsPositive: false}
	case hasTemp && temp >= -10 && temp < 5:
		return Result{
			Reaction:   "Brr, it's cold! I want a blanket and hot tea! ❄️☕",
			MoodChange: randBetween(-10, -5),
			IsPositive: false,
		}
	default:
		return Result{Reaction: pick("neutral"), MoodChange: randBetween(2, 6), IsPositive: true}
	}
}

func parseTemp(t string) (float64, bool) {
	m := tempRe.FindStringSubmatch(t)
	if m == nil {
		return 0, false
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
