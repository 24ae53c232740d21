package reference

var Surnames = []string{"김", "이", "박", "최", "정", "강", "조", "윤", "장", "임"}

var GivenNames = []string{
	"민수", "영희", "철수", "영호", "수진", "미영", "성호", "지연",
	"현우", "서연", "동훈", "유진", "재민", "소영", "준혁",
}

// Affiliations are the plant headquarters volunteers belong to.
var Affiliations = []string{"고리본부", "한빛본부", "한울본부", "월성본부", "새울본부", "신고리본부"}

var RegionNames = []string{
	"서울", "부산", "대구", "인천", "광주", "대전", "울산", "경기",
	"강원", "충북", "충남", "전북", "전남", "경북", "경남", "제주",
}
