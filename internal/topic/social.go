package topic

import (
	"fmt"
	"math/rand/v2"
)

// Subject is a social-studies subject offered by the /social command.
type Subject string

const (
	SubjectHistory   Subject = "history"
	SubjectGeography Subject = "geography"
	SubjectCivics    Subject = "civics"
)

// Subjects lists all social-studies subjects in display order.
var Subjects = []Subject{SubjectHistory, SubjectGeography, SubjectCivics}

// ParseSubject validates a subject value from user input.
func ParseSubject(s string) (Subject, error) {
	switch Subject(s) {
	case SubjectHistory, SubjectGeography, SubjectCivics:
		return Subject(s), nil
	}
	return "", fmt.Errorf("unknown subject: %q", s)
}

// DisplayName returns the Traditional Chinese name shown to users.
func (s Subject) DisplayName() string {
	switch s {
	case SubjectHistory:
		return "歷史"
	case SubjectGeography:
		return "地理"
	case SubjectCivics:
		return "公民與社會"
	}
	return string(s)
}

// socialTopics are the curriculum areas questions are drawn from, following
// the GSAT social-studies syllabus. Kept in Chinese because they are pasted
// verbatim into the generation prompt.
var socialTopics = map[Subject][]string{
	SubjectHistory: {
		"台灣原住民族與早期移民社會",
		"荷西時期與鄭氏政權",
		"清領時期的開發與社會變遷",
		"日治時期的殖民統治與社會運動",
		"戰後台灣的政治發展與民主化",
		"二二八事件與白色恐怖",
		"中國古代的政治制度演變",
		"明清時期的商業與海外貿易",
		"鴉片戰爭與不平等條約",
		"辛亥革命與中華民國建立",
		"文藝復興與宗教改革",
		"地理大發現與歐洲海外擴張",
		"工業革命與社會變遷",
		"法國大革命與民族主義",
		"兩次世界大戰",
		"冷戰格局與全球化",
	},
	SubjectGeography: {
		"地圖判讀與地理資訊系統",
		"氣候類型與氣候變遷",
		"地形作用與台灣地形",
		"水文循環與水資源",
		"人口成長與人口遷移",
		"都市化與都市問題",
		"農業區位與糧食問題",
		"工業區位與全球分工",
		"交通運輸與區域發展",
		"台灣的區域特色與區域發展",
		"東南亞與南亞的環境與發展",
		"歐洲與俄羅斯的環境與發展",
		"美洲的環境與發展",
		"非洲與西亞的環境與發展",
		"全球環境問題與永續發展",
	},
	SubjectCivics: {
		"個人、家庭與社會化",
		"公共利益與社會正義",
		"人權保障與憲法",
		"政府體制與權力分立",
		"民主政治與選舉制度",
		"政黨與利益團體",
		"法律的位階與基本原則",
		"民法與生活",
		"刑法與少年事件處理",
		"行政法與行政救濟",
		"市場機能與價格",
		"生產、分工與比較利益",
		"貨幣與金融體系",
		"政府的經濟角色與公共財",
		"國際貿易與國際組織",
	},
}

// SampleSocialTopics draws up to count distinct topics uniformly at random
// without replacement from the subject's pool. Returns ErrEmptyPool for an
// unknown subject.
func SampleSocialTopics(count int, subject Subject) ([]string, error) {
	if count < 1 {
		return nil, fmt.Errorf("topic count must be positive, got %d", count)
	}

	pool := socialTopics[subject]
	if len(pool) == 0 {
		return nil, ErrEmptyPool
	}

	if count > len(pool) {
		count = len(pool)
	}

	out := make([]string, 0, count)
	for _, idx := range rand.Perm(len(pool))[:count] {
		out = append(out, pool[idx])
	}
	return out, nil
}
