package dto

// OptionsResponse GET /options 表单下拉选项
type OptionsResponse struct {
	Times     []string `json:"times"`
	Locations []string `json:"locations"`
}

// TimeOptions 值班时段
var TimeOptions = []string{
	"07.00 – 08.00 น.",
	"07.30 – 08.20 น.",
	"08.00 – 09.00 น.",
	"11.05 – 11.55 น.",
	"12.00 – 12.50 น.",
	"15.35 – 17.00 น.",
}

// LocationOptions 值班地点
var LocationOptions = []string{
	"บริเวณสะพานลอย",
	"บริเวณจุดรับ-ส่งนักเรียนหน้าโรงเรียน(ป้ายโรงเรียน)",
	"หลังป้อมตำรวจและแนวกำแพงด้านนอกโรงเรียนด้านที่ติดกับสนามกีฬาจังหวัดสิงห์บุรี",
	"บริเวณประตูเข้า-ออกหน้าโรงเรียน",
	"บริเวณประตูเข้า-ออกโรงเก็บรถจักรยานยนต์",
	"บริเวณถนนหน้าพระพุทธสิหิงมงคล",
	"บริเวณสี่แยกอาคาร ๕ และอาคาร ๕",
	"ดูแลนักเรียนมาสาย",
	"โรงอาหาร คาบเรียนที่ ๕",
	"โรงอาหาร คาบเรียนที่ ๖",
	"สนามกีฬาจังหวัดสิงห์บุรี",
	"งานประชาสัมพันธ์และกิจกรรมหน้าเสาธง",
	"หัวหน้าประจำวันและดูแลความปลอดภัยในโรงเรียน",
}
