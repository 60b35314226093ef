package translate

import "strings"

// t2s maps traditional glyphs to their simplified forms, one to one.
// The table covers the characters that actually occur in the corpus
// (herb names, organ and meridian vocabulary, classical-text prose);
// characters not listed are identical in both scripts and pass through.
var t2s = map[rune]rune{
	'藥': '药', '與': '与', '風': '风', '熱': '热', '氣': '气',
	'經': '经', '絡': '络', '臟': '脏', '腎': '肾', '膽': '胆',
	'腸': '肠', '當': '当', '歸': '归', '參': '参', '黃': '黄',
	'連': '连', '翹': '翘', '銀': '银', '蟲': '虫', '靈': '灵',
	'黨': '党', '棗': '枣', '薑': '姜', '蔥': '葱', '樹': '树',
	'葉': '叶', '實': '实', '種': '种', '莖': '茎', '溫': '温',
	'涼': '凉', '鹹': '咸', '澀': '涩', '補': '补', '瀉': '泻',
	'濕': '湿', '腫': '肿', '虛': '虚', '陰': '阴', '陽': '阳',
	'華': '华', '國': '国', '醫': '医', '學': '学', '傳': '传',
	'統': '统', '現': '现', '證': '证', '療': '疗', '臨': '临',
	'試': '试', '驗': '验', '歷': '历', '記': '记', '載': '载',
	'書': '书', '綱': '纲', '養': '养', '體': '体', '質': '质',
	'調': '调', '節': '节', '強': '强', '壯': '壮', '鎮': '镇',
	'靜': '静', '頭': '头', '暈': '晕', '夢': '梦', '遺': '遗',
	'盜': '盗', '無': '无', '為': '为', '於': '于', '後': '后',
	'發': '发', '個': '个', '們': '们', '裡': '里', '裏': '里',
	'蘇': '苏', '蘆': '芦', '薈': '荟', '蒼': '苍', '朮': '术',
	'術': '术', '澤': '泽', '車': '车', '錢': '钱', '決': '决',
	'貝': '贝', '膠': '胶', '烏': '乌', '細': '细', '龍': '龙',
	'蠣': '蛎', '鱉': '鳖', '龜': '龟', '礦': '矿', '鐘': '钟',
	'紅': '红', '絲': '丝', '線': '线', '蓮': '莲', '檳': '槟',
	'訶': '诃', '麥': '麦', '門': '门', '蔘': '参', '沒': '没',
	'鬱': '郁', '梔': '栀', '餘': '余', '糧': '粮', '穀': '谷',
	'雞': '鸡', '鴨': '鸭', '魚': '鱼', '蝦': '虾', '蟬': '蝉',
	'殼': '壳', '馬': '马', '驢': '驴', '膚': '肤', '髮': '发',
	'齒': '齿', '關': '关', '開': '开', '閉': '闭', '問': '问',
	'間': '间', '陳': '陈', '張': '张', '內': '内', '兩': '两',
	'產': '产', '從': '从', '動': '动', '勞': '劳', '勝': '胜',
	'單': '单', '嚴': '严', '圓': '圆', '堅': '坚', '報': '报',
	'壓': '压', '導': '导', '層': '层', '帶': '带', '幹': '干',
	'廣': '广', '應': '应', '懷': '怀', '擴': '扩', '數': '数',
	'斷': '断', '時': '时', '樞': '枢', '機': '机', '檢': '检',
	'淚': '泪', '滅': '灭', '滯': '滞', '漢': '汉', '潤': '润',
	'濁': '浊', '濟': '济', '煩': '烦', '燒': '烧', '爾': '尔',
	'獨': '独', '環': '环', '瘡': '疮', '癢': '痒', '癰': '痈',
	'皺': '皱', '盡': '尽', '眾': '众', '積': '积', '類': '类',
	'純': '纯', '結': '结', '絕': '绝', '緊': '紧', '緩': '缓',
	'縮': '缩', '總': '总', '織': '织', '纖': '纤', '聖': '圣',
	'聯': '联', '聰': '聪', '脈': '脉', '腦': '脑', '膩': '腻',
	'臍': '脐', '興': '兴', '舉': '举', '舊': '旧', '蘊': '蕴',
	'處': '处', '號': '号', '製': '制', '複': '复', '規': '规',
	'視': '视', '覺': '觉', '觀': '观', '論': '论', '謂': '谓',
	'識': '识', '護': '护', '貴': '贵', '費': '费', '較': '较',
	'輕': '轻', '輸': '输', '轉': '转', '農': '农', '運': '运',
	'過': '过', '達': '达', '遠': '远', '適': '适', '選': '选',
	'還': '还', '邊': '边', '鄉': '乡', '釋': '释', '針': '针',
	'鉤': '钩', '鎖': '锁', '長': '长', '隨': '随', '隱': '隐',
	'雙': '双', '雲': '云', '電': '电', '頑': '顽', '頻': '频',
	'顆': '颗', '顏': '颜', '顯': '显', '飲': '饮', '餅': '饼',
	'驚': '惊', '鬆': '松', '鹽': '盐', '點': '点',
}

// ToSimplified derives simplified-script text from traditional-script
// text by per-glyph substitution. The derivation is deterministic and
// reversible only where the mapping happens to be; it is a best-effort
// conversion, not a translation.
func ToSimplified(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if simplified, ok := t2s[r]; ok {
			b.WriteRune(simplified)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
