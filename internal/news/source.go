package news

// Item is one candidate headline produced by a source.
type Item struct {
	Title  string
	URL    string
	Source string
}

// Source describes one external feed and its filtering rules. The configured
// feeds are Russian-language sites, so the keyword data is Russian.
type Source struct {
	Name   string
	URL    string
	Domain string

	// MinTitleLen/MaxTitleLen bound accepted headline lengths in runes.
	MinTitleLen int
	MaxTitleLen int

	// Keywords, when non-empty, require at least one match in the title.
	Keywords []string
	// Blacklist drops titles containing ad/sponsor/social terms.
	Blacklist []string
	// SkipConflictTopics applies the shared military-topic suppression list.
	SkipConflictTopics bool
	// PathFilters, when non-empty, require the article URL to contain one
	// of these path fragments.
	PathFilters []string
}

// conflictTopics is the shared suppression list for military headlines.
var conflictTopics = []string{
	"пво сбила", "беспилотник сбит", "воздушная тревога",
	"обстрел города", "ракетный удар", "спецоперация",
}

var financeKeywords = []string{
	"финанс", "экономика", "банк", "рубль", "доллар", "евро",
	"курс", "инфляция", "ставка", "бюджет", "налог", "цена",
	"рынок", "акции", "инвест", "прибыль", "бизнес",
}

// Sources is the feed registry keyed by name.
var Sources = map[string]Source{
	"forbes": {
		Name:        "forbes",
		URL:         "https://www.forbes.ru/finansy/",
		Domain:      "forbes.ru",
		MinTitleLen: 15,
		MaxTitleLen: 250,
		Keywords: []string{
			"финанс", "экономика", "банк", "инвест", "бизнес", "компани",
			"рынок", "акции", "доход", "прибыль", "кризис", "курс",
			"налог", "бюджет", "доллар", "рубль", "евро",
		},
		Blacklist:          []string{"реклама", "партнёр", "спонсор", "promo", "подписка"},
		SkipConflictTopics: true,
		PathFilters:        []string{"/news/", "/finansy/"},
	},
	"stopgame": {
		Name:        "stopgame",
		URL:         "https://stopgame.ru/news",
		Domain:      "stopgame.ru",
		MinTitleLen: 20,
		MaxTitleLen: 250,
		Blacklist:   []string{"реклама", "vk.com", "t.me", "youtube"},
	},
	"ria_finance": {
		Name:               "ria_finance",
		URL:                "https://ria.ru/",
		Domain:             "ria.ru",
		MinTitleLen:        20,
		MaxTitleLen:        250,
		Keywords:           financeKeywords,
		SkipConflictTopics: true,
	},
	"ria_politics": {
		Name:        "ria_politics",
		URL:         "https://ria.ru/politics/",
		Domain:      "ria.ru",
		MinTitleLen: 20,
		MaxTitleLen: 250,
		Keywords: []string{
			"политика", "президент", "правительство", "закон", "выбор",
			"министр", "депутат", "госдума", "сенат", "дипломат",
			"совет", "указ", "постановление", "реформа",
		},
		SkipConflictTopics: true,
	},
}

// mixSources are the feeds combined by the "mix" pseudo-source. StopGame is
// left out: its headlines are rarely on topic for a mixed digest.
var mixSources = []string{"forbes", "ria_finance", "ria_politics"}
