package render

// Labels holds the user-facing strings of the page.
type Labels struct {
	All         string
	Home        string
	MenuHeading string
	Empty       string
	SoldOut     string
	Loading     string
	Error       string
	Retry       string
}

// KoreanLabels are the default labels.
func KoreanLabels() Labels {
	return Labels{
		All:         "전체",
		Home:        "홈",
		MenuHeading: "메뉴",
		Empty:       "메뉴가 없습니다.",
		SoldOut:     "품절",
		Loading:     "메뉴를 불러오는 중...",
		Error:       "메뉴를 불러오지 못했습니다.",
		Retry:       "다시 시도",
	}
}

// EnglishLabels are used for every non-Korean locale.
func EnglishLabels() Labels {
	return Labels{
		All:         "All",
		Home:        "Home",
		MenuHeading: "Menu",
		Empty:       "No menu items.",
		SoldOut:     "Sold out",
		Loading:     "Loading menu...",
		Error:       "Could not load the menu.",
		Retry:       "Retry",
	}
}

// LabelsFor picks labels by locale: Korean for ko, English otherwise.
func LabelsFor(locale string) Labels {
	if len(locale) >= 2 && locale[:2] == "ko" {
		return KoreanLabels()
	}
	return EnglishLabels()
}

// With returns l with every non-empty field of over applied on top.
func (l Labels) With(over Labels) Labels {
	pick := func(base, o string) string {
		if o != "" {
			return o
		}
		return base
	}
	return Labels{
		All:         pick(l.All, over.All),
		Home:        pick(l.Home, over.Home),
		MenuHeading: pick(l.MenuHeading, over.MenuHeading),
		Empty:       pick(l.Empty, over.Empty),
		SoldOut:     pick(l.SoldOut, over.SoldOut),
		Loading:     pick(l.Loading, over.Loading),
		Error:       pick(l.Error, over.Error),
		Retry:       pick(l.Retry, over.Retry),
	}
}
