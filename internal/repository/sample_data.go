package repository

import "github.com/Lixing-Zhang/menuboard/internal/models"

// SampleCategories returns the sample cafe categories
func SampleCategories() []models.Category {
	return []models.Category{
		{ID: 1, Name: "커피", DisplayOrder: 1},
		{ID: 2, Name: "논커피", DisplayOrder: 2},
		{ID: 3, Name: "디저트", DisplayOrder: 3},
		{ID: 4, Name: "베이커리", DisplayOrder: 4},
		{ID: 5, Name: "시즌메뉴", DisplayOrder: 5},
	}
}

// SampleMenus returns the sample cafe menu; the cheesecake is sold out
func SampleMenus() []models.MenuItem {
	item := func(id int64, name string, categoryID, price int64, description string, available bool) models.MenuItem {
		d := description
		return models.MenuItem{
			ID:          id,
			Name:        name,
			Description: &d,
			Price:       price,
			IsAvailable: available,
			CategoryID:  categoryID,
		}
	}

	return []models.MenuItem{
		item(1, "아메리카노", 1, 4500, "진한 에스프레소와 뜨거운 물의 조화", true),
		item(2, "카페라떼", 1, 5000, "부드러운 우유와 에스프레소의 완벽한 밸런스", true),
		item(3, "카푸치노", 1, 5000, "풍성한 우유 거품과 에스프레소", true),
		item(4, "바닐라 라떼", 1, 5500, "달콤한 바닐라 시럽이 들어간 카페라떼", true),
		item(5, "카라멜 마키아토", 1, 6000, "달콤한 카라멜과 에스프레소의 만남", true),
		item(6, "녹차라떼", 2, 5500, "고급 녹차 파우더로 만든 건강한 라떼", true),
		item(7, "초코라떼", 2, 5500, "진한 초콜릿과 우유의 달콤한 만남", true),
		item(8, "레모네이드", 2, 6000, "상큼한 레몬으로 만든 시원한 음료", true),
		item(9, "딸기라떼", 2, 6500, "달콤한 딸기와 우유의 조합", true),
		item(10, "티라미수", 3, 6500, "이탈리아 정통 디저트", true),
		item(11, "치즈케이크", 3, 6000, "부드럽고 진한 뉴욕 스타일 치즈케이크", false),
		item(12, "브라우니", 3, 5500, "진한 초콜릿이 가득한 촉촉한 브라우니", true),
		item(13, "크로와상", 4, 3500, "버터 향이 가득한 프랑스 정통 크로와상", true),
		item(14, "베이글", 4, 3000, "쫄깃한 플레인 베이글", true),
		item(15, "스콘", 4, 4000, "영국식 전통 스콘", true),
		item(16, "아이스 아메리카노", 5, 4000, "시원한 아이스 아메리카노", true),
		item(17, "프라페", 5, 7000, "여름 한정 시원한 프라페", true),
	}
}
