// Package reference holds the static tables the generator samples from.
package reference

import "github.com/yonghwan1106/e-ansimcare/internal/domain"

type Place struct {
	Sido    string
	Sigungu string
	Dong    string
	Lat     float64
	Lng     float64
}

var Places = []Place{
	{"서울특별시", "강남구", "역삼동", 37.5000, 127.0364},
	{"서울특별시", "강북구", "수유동", 37.6396, 127.0257},
	{"서울특별시", "노원구", "상계동", 37.6542, 127.0568},
	{"부산광역시", "북구", "금곡동", 35.1975, 128.9900},
	{"부산광역시", "사하구", "다대동", 35.0469, 128.9664},
	{"부산광역시", "해운대구", "반여동", 35.1798, 129.1295},
	{"대구광역시", "북구", "침산동", 35.8858, 128.5829},
	{"대구광역시", "서구", "내당동", 35.8686, 128.5564},
	{"인천광역시", "남동구", "구월동", 37.4503, 126.7310},
	{"인천광역시", "부평구", "부평동", 37.5074, 126.7219},
	{"광주광역시", "북구", "오치동", 35.1742, 126.9122},
	{"광주광역시", "광산구", "수완동", 35.1908, 126.8172},
	{"대전광역시", "유성구", "봉명동", 36.3620, 127.3459},
	{"대전광역시", "서구", "둔산동", 36.3515, 127.3835},
	{"울산광역시", "남구", "달동", 35.5384, 129.3114},
	{"울산광역시", "울주군", "온산읍", 35.4227, 129.3488},
	{"경기도", "수원시", "영통동", 37.2636, 127.0286},
	{"경기도", "성남시", "분당동", 37.3827, 127.1195},
	{"경기도", "고양시", "일산동", 37.6580, 126.7734},
	{"경기도", "용인시", "기흥동", 37.2747, 127.1150},
	{"강원도", "춘천시", "효자동", 37.8813, 127.7298},
	{"강원도", "원주시", "무실동", 37.3422, 127.9200},
	{"충청북도", "청주시", "복대동", 36.6358, 127.4913},
	{"충청북도", "충주시", "연수동", 36.9910, 127.9259},
	{"충청남도", "천안시", "두정동", 36.8324, 127.1480},
	{"충청남도", "아산시", "배방읍", 36.7806, 127.0065},
	{"전라북도", "전주시", "효자동", 35.7990, 127.1081},
	{"전라북도", "익산시", "영등동", 35.9583, 126.9576},
	{"전라남도", "여수시", "여서동", 34.7604, 127.6622},
	{"전라남도", "순천시", "조례동", 34.9506, 127.4872},
	{"경상북도", "경주시", "황성동", 35.8562, 129.2246},
	{"경상북도", "포항시", "양덕동", 36.0322, 129.3650},
	{"경상남도", "창원시", "중앙동", 35.2270, 128.6811},
	{"경상남도", "김해시", "내외동", 35.2342, 128.8811},
	{"제주도", "제주시", "노형동", 33.4890, 126.4983},
	{"제주도", "서귀포시", "중문동", 33.2541, 126.4122},
}

// SidoCentre is the map anchor for a province in regional rollups.
type SidoCentre struct {
	Sido        string
	Coordinates domain.Coordinates
}

// SidoCentres is ordered the way regional rollups are reported.
var SidoCentres = []SidoCentre{
	{"서울특별시", domain.Coordinates{Lat: 37.5665, Lng: 126.9780}},
	{"부산광역시", domain.Coordinates{Lat: 35.1796, Lng: 129.0756}},
	{"대구광역시", domain.Coordinates{Lat: 35.8714, Lng: 128.6014}},
	{"인천광역시", domain.Coordinates{Lat: 37.4563, Lng: 126.7052}},
	{"광주광역시", domain.Coordinates{Lat: 35.1595, Lng: 126.8526}},
	{"대전광역시", domain.Coordinates{Lat: 36.3504, Lng: 127.3845}},
	{"울산광역시", domain.Coordinates{Lat: 35.5384, Lng: 129.3114}},
	{"경기도", domain.Coordinates{Lat: 37.4138, Lng: 127.5183}},
	{"강원도", domain.Coordinates{Lat: 37.8228, Lng: 128.1555}},
	{"충청북도", domain.Coordinates{Lat: 36.6357, Lng: 127.4912}},
	{"충청남도", domain.Coordinates{Lat: 36.5184, Lng: 126.8000}},
	{"전라북도", domain.Coordinates{Lat: 35.7175, Lng: 127.1530}},
	{"전라남도", domain.Coordinates{Lat: 34.8679, Lng: 126.9910}},
	{"경상북도", domain.Coordinates{Lat: 36.0190, Lng: 128.3930}},
	{"경상남도", domain.Coordinates{Lat: 35.4606, Lng: 128.2132}},
	{"제주도", domain.Coordinates{Lat: 33.4890, Lng: 126.4983}},
}

const (
	TagLivingAloneElderly = "독거노인"
	TagBasicLivelihood    = "기초수급"
	TagNearPoverty        = "차상위"
)

var Characteristics = []string{
	TagLivingAloneElderly, "장애인", TagBasicLivelihood, TagNearPoverty,
	"한부모", "조손가정", "다문화", "소년소녀가장",
}

var HousingTypes = []string{"단독주택", "다세대", "연립", "아파트", "옥탑방", "지하", "쪽방"}

const (
	HeatingCityGas    = "도시가스"
	HeatingOilBoiler  = "기름보일러"
	HeatingBriquette  = "연탄"
	HeatingElectric   = "전기"
	HeatingNightPower = "심야전기"
)

var HeatingTypes = []string{HeatingCityGas, HeatingOilBoiler, HeatingBriquette, HeatingElectric, HeatingNightPower}

var PowerPlants = []string{"고리원전", "한빛원전", "한울원전", "월성원전", "새울원전", "신고리원전"}
