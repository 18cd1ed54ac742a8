package lang

import (
	"regexp"
	"sync"
)

// Signature 一种语言的检测特征
type Signature struct {
	Language Language
	// Strong 强特征，几乎只在该语言出现
	Strong []*regexp.Regexp
	// General 一般特征
	General []*regexp.Regexp
	// Keywords 关键字，按整词且不区分大小写匹配
	Keywords []*regexp.Regexp
	Weight   float64
}

type signatureSource struct {
	language Language
	strong   []string
	general  []string
	keywords []string
	weight   float64
}

// 表中顺序决定同分时的排名
var signatureSources = []signatureSource{
	{
		language: Python,
		strong: []string{
			`^import\s+(pandas|numpy|sklearn|tensorflow|keras|torch|matplotlib|seaborn|flask|django|requests|os|sys|re|json|csv|datetime|collections|itertools|functools|typing|asyncio|pathlib)\b`,
			`^from\s+(pandas|numpy|sklearn|tensorflow|keras|torch|matplotlib|seaborn|flask|django|fastapi|typing|collections|itertools|functools|asyncio|pathlib|dataclasses)\s+import`,
			`^def\s+\w+\s*\([^)]*\)\s*:\s*$`,
			`^\s+def\s+\w+\s*\([^)]*\)\s*:\s*$`,
			`^class\s+\w+(\s*\([^)]*\))?\s*:\s*$`,
			`^\s*if\s+__name__\s*==\s*['"]__main__['"]\s*:`,
			`^\s*elif\s+[^{]+:\s*$`,
			`^\s*except\s+\w+(\s+as\s+\w+)?\s*:\s*$`,
			`^\s*try\s*:\s*$`,
			`^\s*finally\s*:\s*$`,
			`^\s*with\s+.+\s+as\s+\w+\s*:\s*$`,
			`print\s*\([^)]*\)`,
			`\[\s*\w+(\.\w+)*\s+for\s+\w+\s+in\s+`,
			`\{\s*\w+\s*:\s*\w+\s+for\s+\w+\s+in\s+`,
			`^@\w+(\.\w+)*(\([^)]*\))?\s*$`,
			`f["'][^"']*\{[^}]+\}[^"']*["']`,
			`["']{3}[\s\S]*?["']{3}`,
		},
		general: []string{
			`^import\s+\w+$`,
			`^from\s+\w+\s+import\s+`,
			`self\.\w+`,
			`__init__`,
			`__str__`,
			`__repr__`,
			`^\s*#[^!].*$`,
			`\.append\s*\(`,
			`\.extend\s*\(`,
			`\.items\s*\(\)`,
			`\.keys\s*\(\)`,
			`\.values\s*\(\)`,
			`range\s*\(`,
			`len\s*\(`,
			`str\s*\(`,
			`int\s*\(`,
			`float\s*\(`,
			`list\s*\(`,
			`dict\s*\(`,
			`set\s*\(`,
			`tuple\s*\(`,
			`\bTrue\b`,
			`\bFalse\b`,
			`\bNone\b`,
			`lambda\s+\w+\s*:`,
			`\bimport\s+\w+\s+as\s+\w+\b`,
			`\bor\b`,
			`\band\b`,
			`\bnot\b`,
			`\bin\b`,
			`\bis\b`,
		},
		keywords: []string{"def", "elif", "except", "finally", "lambda", "yield", "async", "await", "None", "True", "False", "self", "import", "from", "as", "with", "pass", "raise", "try", "global", "nonlocal", "assert", "del", "in", "is", "not", "and", "or"},
		weight:   2.0,
	},
	{
		language: Java,
		strong: []string{
			`public\s+static\s+void\s+main\s*\(\s*String\s*\[\s*\]\s*\w+\s*\)`,
			`^import\s+java\.[\w.]+;$`,
			`^import\s+javax\.[\w.]+;$`,
			`^import\s+org\.(springframework|apache|junit)\.[\w.]+;$`,
			`^package\s+[\w.]+;$`,
			`System\.out\.print(ln)?\s*\(`,
			`System\.err\.print(ln)?\s*\(`,
			`public\s+(final\s+)?class\s+\w+\s+(extends\s+\w+\s+)?(implements\s+[\w,\s]+\s*)?\{`,
			`@Override\s*$`,
			`@Autowired`,
			`@Component`,
			`@Service`,
			`@Repository`,
		},
		general: []string{
			`public\s+class\s+\w+`,
			`private\s+\w+\s+\w+\s*;`,
			`protected\s+\w+\s+\w+`,
			`@\w+(\([^)]*\))?`,
			`new\s+\w+\s*\(`,
			`\.equals\s*\(`,
			`\.hashCode\s*\(`,
			`\.toString\s*\(`,
			`throws\s+\w+`,
			`catch\s*\(\w+\s+\w+\)`,
		},
		keywords: []string{"public", "private", "protected", "class", "interface", "extends", "implements", "static", "final", "void", "throws", "synchronized", "abstract", "native", "transient", "volatile"},
		weight:   1.5,
	},
	{
		language: JavaScript,
		strong: []string{
			`const\s+\w+\s*=\s*require\s*\(\s*['"][^'"]+['"]\s*\)`,
			`module\.exports\s*=`,
			`exports\.\w+\s*=`,
			`console\.(log|error|warn|info|debug)\s*\(`,
			`document\.(getElementById|querySelector|querySelectorAll|createElement|getElementsByClassName)\s*\(`,
			`window\.(addEventListener|removeEventListener|location|localStorage|sessionStorage)\b`,
			`^import\s+\{[^}]+\}\s+from\s+['"][^'"]+['"];?\s*$`,
			`^import\s+\w+\s+from\s+['"][^'"]+['"];?\s*$`,
			`^export\s+default\s+`,
			`^export\s+(const|let|var|function|class)\s+`,
			`const\s+\w+\s*=\s*\([^)]*\)\s*=>`,
			`=>\s*\{`,
			`\.then\s*\(\s*(async\s*)?\(`,
			`\.catch\s*\(\s*\(`,
			`Promise\.(all|race|resolve|reject)\s*\(`,
			`async\s+(function|\(|\w+\s*=>)`,
		},
		general: []string{
			`const\s+\w+\s*=`,
			`let\s+\w+\s*=`,
			`var\s+\w+\s*=`,
			`function\s+\w+\s*\(`,
			`=>\s*[^{]`,
			`\.\.\.\w+`,
			"`[^`]*\\$\\{[^}]+\\}[^`]*`",
			`JSON\.(parse|stringify)\s*\(`,
			`Array\.(isArray|from|of)\s*\(`,
			`Object\.(keys|values|entries|assign)\s*\(`,
		},
		keywords: []string{"const", "let", "var", "function", "return", "async", "await", "class", "extends", "import", "export", "default", "null", "undefined", "typeof", "instanceof", "new", "this", "super"},
		weight:   1.0,
	},
	{
		language: TypeScript,
		strong: []string{
			`:\s*(string|number|boolean|void|never|unknown|any|null|undefined)\s*[;=),\]]`,
			`:\s*(string|number|boolean|void|never|unknown|any)\[\]\s*[;=),]`,
			`^interface\s+\w+\s*(<[\w,\s<>]+>)?\s*(\s+extends\s+[\w,\s<>]+)?\s*\{`,
			`^export\s+interface\s+\w+`,
			`^type\s+\w+\s*(<[\w,\s<>]+>)?\s*=\s*`,
			`^export\s+type\s+\w+`,
			`:\s*\w+<[\w,\s<>\[\]|&]+>`,
			`<\w+(\s*,\s*\w+)*>\s*\(`,
			`as\s+(string|number|boolean|any|unknown|const)\b`,
			`<(string|number|boolean|any)>`,
			`import\s+type\s+`,
			`readonly\s+\w+\s*:`,
			`\?\s*:\s*\w+`,
			`private\s+readonly\s+\w+\s*:`,
			`public\s+\w+\s*:\s*\w+`,
		},
		general: []string{
			`enum\s+\w+\s*\{`,
			`namespace\s+\w+\s*\{`,
			`declare\s+(const|let|var|function|class|module)`,
			`keyof\s+\w+`,
			`typeof\s+\w+`,
			`\w+\s+extends\s+\w+\s*\?`,
			`\w+\s+\|\s+\w+`,
			`\w+\s+&\s+\w+`,
			`Partial<\w+>`,
			`Required<\w+>`,
			`Pick<\w+,\s*['"][^'"]+['"]>`,
			`Omit<\w+,\s*['"][^'"]+['"]>`,
			`Record<\w+,\s*\w+>`,
		},
		keywords: []string{"interface", "type", "enum", "namespace", "declare", "readonly", "keyof", "typeof", "infer", "extends", "implements", "abstract", "as", "is", "never", "unknown", "any"},
		weight:   1.8,
	},
	{
		language: Cpp,
		strong: []string{
			`#include\s*<iostream>`,
			`#include\s*<vector>`,
			`#include\s*<string>`,
			`#include\s*<map>`,
			`#include\s*<algorithm>`,
			`#include\s*<memory>`,
			`#include\s*<fstream>`,
			`std::cout\s*<<`,
			`std::cin\s*>>`,
			`std::endl`,
			`std::string\b`,
			`std::vector\s*<`,
			`std::map\s*<`,
			`std::unique_ptr\s*<`,
			`std::shared_ptr\s*<`,
			`using\s+namespace\s+std\s*;`,
			`int\s+main\s*\(\s*(int\s+argc\s*,\s*char\s*\*?\s*\*?\s*argv\s*\[\s*\]|void)?\s*\)`,
			`class\s+\w+\s*(:\s*(public|private|protected)\s+\w+)?\s*\{[\s\S]*?(public|private|protected)\s*:`,
			`template\s*<\s*(typename|class)\s+\w+`,
		},
		general: []string{
			`#include\s*<[\w.]+>`,
			`#include\s*"[\w.]+"`,
			`std::\w+`,
			`cout\s*<<`,
			`cin\s*>>`,
			`nullptr`,
			`::\w+`,
			`public:`,
			`private:`,
			`protected:`,
			`virtual\s+\w+`,
			`override\s*;`,
			`const\s+\w+\s*&`,
			`\w+\s*\*\s+\w+`,
		},
		keywords: []string{"namespace", "template", "typename", "virtual", "override", "nullptr", "constexpr", "auto", "decltype", "static_cast", "dynamic_cast", "const_cast", "reinterpret_cast", "friend", "inline", "mutable"},
		weight:   1.6,
	},
	{
		language: C,
		strong: []string{
			`#include\s*<stdio\.h>`,
			`#include\s*<stdlib\.h>`,
			`#include\s*<string\.h>`,
			`#include\s*<math\.h>`,
			`#include\s*<ctype\.h>`,
			`#include\s*<time\.h>`,
			`#include\s*<stdbool\.h>`,
			`printf\s*\(\s*"`,
			`scanf\s*\(\s*"`,
			`fprintf\s*\(`,
			`fscanf\s*\(`,
			`int\s+main\s*\(\s*(void)?\s*\)\s*\{`,
			`malloc\s*\(\s*sizeof`,
			`calloc\s*\(`,
			`realloc\s*\(`,
			`free\s*\(\s*\w+\s*\)`,
		},
		general: []string{
			`printf\s*\(`,
			`scanf\s*\(`,
			`sizeof\s*\(`,
			`struct\s+\w+\s*\{`,
			`typedef\s+struct`,
			`typedef\s+enum`,
			`#define\s+\w+`,
			`#ifdef\s+\w+`,
			`#ifndef\s+\w+`,
			`#endif`,
			`NULL\b`,
			`\w+\s*\*\s*\w+\s*=`,
			`&\w+`,
		},
		keywords: []string{"printf", "scanf", "malloc", "free", "calloc", "realloc", "sizeof", "typedef", "struct", "union", "enum", "extern", "register", "volatile", "NULL", "FILE"},
		weight:   1.3,
	},
	{
		language: CSharp,
		strong: []string{
			`^using\s+System(\.\w+)*;$`,
			`^using\s+(Microsoft|Newtonsoft|NUnit|Xunit)\.[\w.]+;$`,
			`^namespace\s+[\w.]+\s*(\{|;)$`,
			`Console\.(WriteLine|ReadLine|Write|Read)\s*\(`,
			`\{\s*get\s*;\s*set\s*;\s*\}`,
			`\{\s*get\s*;\s*\}`,
			`\{\s*get\s*=>`,
			`\[\w+(\([^\]]*\))?\]\s*(public|private|protected|internal)`,
			`\[HttpGet\]`,
			`\[HttpPost\]`,
			`\[Route\(`,
			`async\s+Task(<\w+>)?\s+\w+\s*\(`,
			`\.(Where|Select|OrderBy|FirstOrDefault|ToList|Any|All)\s*\(`,
			`\$"[^"]*\{[^}]+\}[^"]*"`,
		},
		general: []string{
			`public\s+class\s+\w+`,
			`public\s+interface\s+\w+`,
			`public\s+override`,
			`\?\?`,
			`\?\.`,
			`var\s+\w+\s*=`,
			`new\s+\w+\s*\{`,
			`sealed\s+class`,
			`partial\s+class`,
			`virtual\s+\w+`,
		},
		keywords: []string{"namespace", "using", "partial", "sealed", "abstract", "virtual", "override", "async", "await", "var", "dynamic", "object", "string", "decimal", "internal", "readonly", "ref", "out", "params"},
		weight:   1.6,
	},
	{
		language: Go,
		strong: []string{
			`^package\s+(main|\w+)\s*$`,
			`^func\s+main\s*\(\s*\)\s*\{`,
			`fmt\.(Println|Printf|Print|Sprintf|Fprintf)\s*\(`,
			`^import\s+\(\s*$`,
			`\w+\s*:=\s*\w+`,
			`^func\s+\(\s*\w+\s+\*?\w+\s*\)\s+\w+\s*\(`,
			`if\s+err\s*!=\s*nil\s*\{`,
			`defer\s+\w+\.(Close|Unlock|Done)\s*\(\)`,
			`go\s+func\s*\(`,
			`go\s+\w+\s*\(`,
		},
		general: []string{
			`func\s+\w+\s*\(`,
			`var\s+\w+\s+\w+`,
			`const\s+\w+\s*=`,
			`type\s+\w+\s+struct\s*\{`,
			`type\s+\w+\s+interface\s*\{`,
			`make\s*\(\s*(map|chan|slice|\[\])`,
			`range\s+\w+`,
			`chan\s+\w+`,
			`<-\s*\w+`,
			`\w+\s*<-`,
		},
		keywords: []string{"package", "import", "func", "var", "const", "type", "struct", "interface", "map", "chan", "go", "defer", "select", "range", "fallthrough", "nil"},
		weight:   1.7,
	},
	{
		language: Rust,
		strong: []string{
			`^fn\s+main\s*\(\s*\)\s*(->[\s\w<>]+)?\s*\{`,
			`println!\s*\(`,
			`print!\s*\(`,
			`format!\s*\(`,
			`vec!\s*\[`,
			`panic!\s*\(`,
			`let\s+mut\s+\w+`,
			`^impl(<[\w,\s<>]+>)?\s+\w+(<[\w,\s<>]+>)?\s+(for\s+\w+(<[\w,\s<>]+>)?\s+)?\{`,
			`use\s+std::\w+`,
			`use\s+crate::\w+`,
			`Option<[\w<>]+>`,
			`Result<[\w<>]+,\s*[\w<>]+>`,
			`Some\s*\(`,
			`\bNone\b`,
			`Ok\s*\(`,
			`Err\s*\(`,
			`&mut\s+\w+`,
			`&'\w+\s+`,
		},
		general: []string{
			`fn\s+\w+\s*\(`,
			`let\s+\w+\s*:`,
			`pub\s+(fn|struct|enum|mod|trait)`,
			`mod\s+\w+\s*\{`,
			`trait\s+\w+\s*\{`,
			`match\s+\w+\s*\{`,
			`=>\s*\{`,
			`\|\w+\|\s*\{`,
			`\.unwrap\s*\(\)`,
			`\.expect\s*\(`,
			`\.map\s*\(\|`,
			`\.filter\s*\(\|`,
		},
		keywords: []string{"fn", "let", "mut", "impl", "trait", "struct", "enum", "pub", "mod", "use", "crate", "self", "super", "where", "async", "await", "unsafe", "dyn", "move", "ref", "match"},
		weight:   1.8,
	},
	{
		language: PHP,
		strong: []string{
			`<\?php`,
			`<\?=`,
			`\$_GET\[`,
			`\$_POST\[`,
			`\$_SESSION\[`,
			`\$_REQUEST\[`,
			`\$_SERVER\[`,
			`\$_FILES\[`,
			`\$_COOKIE\[`,
			`\$this->\w+`,
			`^namespace\s+[\w\\]+;$`,
			`^use\s+[\w\\]+;$`,
			`function\s+\w+\s*\([^)]*\$\w+`,
		},
		general: []string{
			`\$\w+\s*=`,
			`echo\s+`,
			`print_r\s*\(`,
			`var_dump\s*\(`,
			`public\s+function\s+\w+`,
			`private\s+function\s+\w+`,
			`protected\s+function\s+\w+`,
			`static\s+function\s+\w+`,
			`->[\w]+\s*\(`,
			`array\s*\(`,
			`\[\s*['"]?\w+['"]?\s*=>`,
			`::\w+\s*\(`,
		},
		keywords: []string{"echo", "print", "isset", "unset", "empty", "die", "exit", "include", "require", "include_once", "require_once", "namespace", "use", "trait", "abstract", "final", "clone"},
		weight:   1.7,
	},
	{
		language: Ruby,
		strong: []string{
			`^require\s+['"][\w/]+['"]\s*$`,
			`^require_relative\s+['"][\w/]+['"]\s*$`,
			`\.each\s+do\s*\|\w+\|`,
			`\.map\s+do\s*\|\w+\|`,
			`\.select\s+do\s*\|\w+\|`,
			`attr_accessor\s+:\w+`,
			`attr_reader\s+:\w+`,
			`attr_writer\s+:\w+`,
			`def\s+initialize\s*\(`,
			`^puts\s+`,
			`:\w+\s*=>`,
			`\w+:\s*['"\w]`,
			`class\s+\w+\s*<\s*\w+`,
			`^\s*end\s*$`,
		},
		general: []string{
			`def\s+\w+`,
			`\|[\w,\s]+\|`,
			`@\w+\s*=`,
			`@@\w+`,
			`do\s*$`,
			`\.each\s*\{`,
			`\.map\s*\{`,
			`\.select\s*\{`,
			`unless\s+`,
			`until\s+`,
			`\bnil\b`,
		},
		keywords: []string{"def", "end", "class", "module", "attr_accessor", "attr_reader", "attr_writer", "puts", "gets", "require", "include", "extend", "yield", "lambda", "proc", "nil", "unless", "until", "elsif", "when", "then"},
		weight:   1.5,
	},
	{
		language: Swift,
		strong: []string{
			`^import\s+(Foundation|UIKit|SwiftUI|Combine|CoreData|MapKit|AVFoundation)$`,
			`func\s+\w+\s*\([^)]*\)\s*->\s*\w+(\?|!)?\s*\{`,
			`guard\s+let\s+\w+\s*=\s*\w+`,
			`if\s+let\s+\w+\s*=\s*\w+`,
			`var\s+\w+\s*:\s*\w+\s*\?`,
			`let\s+\w+\s*:\s*\w+\s*!`,
			`@IBOutlet\s+`,
			`@IBAction\s+`,
			`@Published\s+`,
			`@State\s+`,
			`@Binding\s+`,
			`@ObservedObject\s+`,
			`override\s+func\s+\w+`,
			`\{\s*\(\w+\)\s*->\s*\w+\s+in`,
			`\{\s*\w+\s+in`,
		},
		general: []string{
			`func\s+\w+\s*\(`,
			`var\s+\w+\s*:`,
			`let\s+\w+\s*:`,
			`class\s+\w+\s*:`,
			`struct\s+\w+\s*(:\s*\w+)?\s*\{`,
			`enum\s+\w+\s*\{`,
			`protocol\s+\w+\s*\{`,
			`extension\s+\w+\s*(:\s*\w+)?\s*\{`,
			`print\s*\(`,
			`\?\?`,
			`\?\.`,
			`\.map\s*\{\s*\$`,
			`\.filter\s*\{\s*\$`,
		},
		keywords: []string{"func", "var", "let", "guard", "defer", "import", "class", "struct", "enum", "protocol", "extension", "typealias", "associatedtype", "inout", "mutating", "fileprivate", "internal", "open", "weak", "unowned", "lazy", "didSet", "willSet"},
		weight:   1.4,
	},
	{
		language: Kotlin,
		strong: []string{
			`fun\s+main\s*\(\s*(args\s*:\s*Array<String>)?\s*\)\s*\{`,
			`println\s*\(`,
			`data\s+class\s+\w+\s*\(`,
			`val\s+\w+\s*:\s*\w+(<[\w,\s<>]+>)?\s*=`,
			`var\s+\w+\s*:\s*\w+(<[\w,\s<>]+>)?\s*=`,
			`companion\s+object\s*\{`,
			`\w+\?\.let\s*\{`,
			`\?\.`,
			`!!`,
			`when\s*\([^)]+\)\s*\{`,
			`object\s+\w+\s*(:\s*\w+)?\s*\{`,
			`suspend\s+fun\s+\w+`,
		},
		general: []string{
			`fun\s+\w+\s*\(`,
			`val\s+\w+\s*[=:]`,
			`var\s+\w+\s*[=:]`,
			`class\s+\w+\s*\(`,
			`sealed\s+class`,
			`it\.\w+`,
			`it\s*->`,
			`\{\s*\w+\s*->`,
			`\.let\s*\{`,
			`\.apply\s*\{`,
			`\.run\s*\{`,
			`\.also\s*\{`,
		},
		keywords: []string{"fun", "val", "var", "when", "data", "object", "companion", "sealed", "inline", "reified", "suspend", "lateinit", "by", "lazy", "init", "internal", "crossinline", "noinline"},
		weight:   1.5,
	},
	{
		language: HTML,
		strong: []string{
			`(?i)<!DOCTYPE\s+html>`,
			`(?i)<html[\s>]`,
			`(?i)<head[\s>][\s\S]*?</head>`,
			`(?i)<body[\s>]`,
			`(?i)<meta\s+[^>]*charset`,
			`(?i)<meta\s+[^>]*viewport`,
			`(?i)<link\s+[^>]*rel\s*=\s*["']stylesheet["']`,
			`(?i)<script[\s>]`,
			`(?i)<style[\s>]`,
		},
		general: []string{
			`(?i)<div[\s>]`,
			`(?i)<span[\s>]`,
			`(?i)<p[\s>]`,
			`(?i)<a\s+href`,
			`(?i)<img\s+[^>]*src`,
			`</\w+>`,
			`(?i)<form[\s>]`,
			`(?i)<input[\s>]`,
			`(?i)<button[\s>]`,
			`(?i)<h[1-6][\s>]`,
			`(?i)<ul[\s>]`,
			`(?i)<li[\s>]`,
			`(?i)<table[\s>]`,
			`(?i)<nav[\s>]`,
			`(?i)<header[\s>]`,
			`(?i)<footer[\s>]`,
			`(?i)<section[\s>]`,
			`(?i)<article[\s>]`,
		},
		weight: 1.8,
	},
	{
		language: CSS,
		strong: []string{
			`^[\w.#\-\[\]='"~^$*:,\s]+\s*\{[\s\S]*?\}`,
			`@media\s+\(?(screen|print|all|min-width|max-width)`,
			`@keyframes\s+\w+\s*\{`,
			`@import\s+(url\()?['"][^'"]+['"]\)?;`,
			`@font-face\s*\{`,
			`display\s*:\s*(flex|grid|block|inline-block|none)\s*;`,
			`position\s*:\s*(relative|absolute|fixed|sticky)\s*;`,
			`background(-color)?\s*:\s*[^;]+;`,
		},
		general: []string{
			`[a-z-]+\s*:\s*[^;{}]+;`,
			`\.[\w-]+\s*\{`,
			`#[\w-]+\s*\{`,
			`:hover\s*\{`,
			`:focus\s*\{`,
			`:active\s*\{`,
			`::before`,
			`::after`,
			`!important`,
			`\d+(px|em|rem|%|vh|vw|vmin|vmax)\b`,
			`var\s*\(\s*--[\w-]+\s*\)`,
			`calc\s*\(`,
			`rgba?\s*\(`,
			`hsla?\s*\(`,
		},
		weight: 1.8,
	},
	{
		language: SQL,
		strong: []string{
			`(?i)SELECT\s+(DISTINCT\s+)?[\w*,\s.]+\s+FROM\s+\w+`,
			`(?i)INSERT\s+INTO\s+\w+\s*\([^)]+\)\s*VALUES`,
			`(?i)UPDATE\s+\w+\s+SET\s+\w+\s*=`,
			`(?i)CREATE\s+TABLE\s+(IF\s+NOT\s+EXISTS\s+)?\w+\s*\(`,
			`(?i)ALTER\s+TABLE\s+\w+\s+(ADD|DROP|MODIFY|ALTER)\s+`,
			`(?i)DROP\s+TABLE\s+(IF\s+EXISTS\s+)?\w+`,
			`(?i)(INNER|LEFT|RIGHT|FULL|CROSS)\s+JOIN\s+\w+\s+ON\s+`,
			`(?i)PRIMARY\s+KEY\s*\(`,
			`(?i)FOREIGN\s+KEY\s*\(`,
			`(?i)REFERENCES\s+\w+\s*\(`,
		},
		general: []string{
			`(?i)DELETE\s+FROM\s+\w+`,
			`(?i)WHERE\s+\w+\s*(=|<|>|LIKE|IN|IS)`,
			`(?i)GROUP\s+BY\s+[\w,\s]+`,
			`(?i)ORDER\s+BY\s+[\w,\s]+(ASC|DESC)?`,
			`(?i)HAVING\s+`,
			`(?i)LIMIT\s+\d+`,
			`(?i)OFFSET\s+\d+`,
			`(?i)AS\s+\w+`,
			`(?i)COUNT\s*\(`,
			`(?i)SUM\s*\(`,
			`(?i)AVG\s*\(`,
			`(?i)MAX\s*\(`,
			`(?i)MIN\s*\(`,
			`(?i)CASE\s+WHEN\s+`,
		},
		keywords: []string{"SELECT", "FROM", "WHERE", "INSERT", "UPDATE", "DELETE", "CREATE", "ALTER", "DROP", "JOIN", "LEFT", "RIGHT", "INNER", "OUTER", "FULL", "CROSS", "ON", "AND", "OR", "NOT", "IN", "LIKE", "BETWEEN", "GROUP", "ORDER", "BY", "HAVING", "UNION", "INDEX", "PRIMARY", "FOREIGN", "KEY", "CONSTRAINT", "DEFAULT", "NULL", "UNIQUE", "CHECK"},
		weight:   1.9,
	},
}

var (
	signaturesOnce sync.Once
	signatures     []Signature
)

// Signatures 返回编译好的检测特征表，首次调用时编译，之后只读
func Signatures() []Signature {
	signaturesOnce.Do(func() {
		signatures = make([]Signature, 0, len(signatureSources))
		for _, src := range signatureSources {
			sig := Signature{Language: src.language, Weight: src.weight}
			for _, p := range src.strong {
				sig.Strong = append(sig.Strong, multiline(p))
			}
			for _, p := range src.general {
				sig.General = append(sig.General, multiline(p))
			}
			for _, kw := range src.keywords {
				sig.Keywords = append(sig.Keywords, regexp.MustCompile(`(?i)\b`+regexp.QuoteMeta(kw)+`\b`))
			}
			signatures = append(signatures, sig)
		}
	})
	return signatures
}

// multiline 所有检测特征按多行模式匹配，^ 与 $ 作用于每一行
func multiline(p string) *regexp.Regexp {
	return regexp.MustCompile(`(?m)` + p)
}
