package analysis

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/yeisme/codescope/pkg/models"
)

var (
	evalRe        = regexp.MustCompile(`(?i)eval\s*\(`)
	innerHTMLRe   = regexp.MustCompile(`(?i)innerHTML\s*=`)
	sqlConcatRe   = regexp.MustCompile("(?i)(SELECT|INSERT|UPDATE|DELETE).*(\\+|concat|\\$\\{).*['\"`]")
	credentialsRe = regexp.MustCompile(`(?i)(?:password|api[_-]?key|secret|token|auth)\s*[=:]\s*['"][^'"]{8,}['"]`)
	md5Re         = regexp.MustCompile(`(?i)md5`)
	sha1Re        = regexp.MustCompile(`(?i)sha1`)
	base64Re      = regexp.MustCompile(`(?i)base64`)
)

func evalUsage(src *source) []models.Issue {
	if !evalRe.MatchString(src.code) {
		return nil
	}
	n := src.locate(evalRe)
	return one(models.Issue{
		Type:        models.SeverityCritical,
		Title:       "Critical: eval() allows arbitrary code execution",
		Description: fmt.Sprintf("Found on line %d. The eval() function executes any string as code, making it extremely dangerous. Attackers can inject malicious code that will run with full application privileges, potentially stealing data, modifying behavior, or compromising the entire system.", n),
		Line:        n,
		Suggestion:  "Replace eval() with safer alternatives: For JSON parsing, use JSON.parse(). For mathematical expressions, use a safe expression evaluator library like math.js. If you absolutely need dynamic code, use new Function() with strict validation and Content Security Policy headers.",
	})
}

func innerHTMLAssignment(src *source) []models.Issue {
	if !innerHTMLRe.MatchString(src.code) {
		return nil
	}
	n := src.locate(innerHTMLRe)
	return one(models.Issue{
		Type:        models.SeverityCritical,
		Title:       "Critical XSS Risk: Direct innerHTML manipulation",
		Description: fmt.Sprintf("Detected on line %d. Setting innerHTML with unsanitized user input allows attackers to inject malicious scripts that execute in users' browsers, potentially stealing cookies, session tokens, or performing unauthorized actions.", n),
		Line:        n,
		Suggestion:  "Use textContent for plain text (e.g., element.textContent = userInput). For HTML content, sanitize using DOMPurify: element.innerHTML = DOMPurify.sanitize(userInput). Or use createElement() and setAttribute() for dynamic content. Modern frameworks like React automatically escape content.",
	})
}

func sqlInjection(src *source) []models.Issue {
	if !sqlConcatRe.MatchString(src.code) {
		return nil
	}
	n := src.locate(sqlConcatRe)
	var suggestion string
	switch {
	case src.isJSFamily():
		suggestion = `Use parameterized queries: db.query("SELECT * FROM users WHERE id = $1", [userId]) or prepared statements. With ORMs like Prisma: prisma.user.findUnique({ where: { id } }). Never concatenate user input into SQL strings.`
	case languageHas(src.language, "python"):
		suggestion = `Use parameterized queries: cursor.execute("SELECT * FROM users WHERE id = %s", (user_id,)) or ORM methods. Never use string formatting (f-strings, %) with SQL.`
	default:
		suggestion = "Use prepared statements with bound parameters. Never concatenate user input into SQL queries."
	}
	return one(models.Issue{
		Type:        models.SeverityCritical,
		Title:       "Critical SQL Injection vulnerability",
		Description: fmt.Sprintf("Found on line %d. String concatenation in SQL queries allows attackers to modify query logic, bypass authentication, steal data, or delete entire databases. This is one of the most dangerous web vulnerabilities.", n),
		Line:        n,
		Suggestion:  suggestion,
	})
}

func hardcodedCredentials(src *source) []models.Issue {
	if !credentialsRe.MatchString(src.code) {
		return nil
	}
	n := src.locate(credentialsRe)
	return one(models.Issue{
		Type:        models.SeverityCritical,
		Title:       "Critical: Hardcoded credentials detected",
		Description: fmt.Sprintf("Found on line %d. Credentials in source code are exposed in version control history forever, even if deleted later. They can be discovered through GitHub searches, leaked repositories, or compromised systems.", n),
		Line:        n,
		Suggestion:  `Store secrets in environment variables: process.env.API_KEY or os.environ["API_KEY"]. Use .env files locally (add to .gitignore!). In production, use secret managers like AWS Secrets Manager, Azure Key Vault, or HashiCorp Vault. Rotate exposed credentials immediately.`,
	})
}

func weakCrypto(src *source) []models.Issue {
	if !hasWeakCrypto(src.code) {
		return nil
	}
	suggestion := "Use bcrypt, Argon2, or PBKDF2 for passwords with proper salts. For hashing, use SHA-256+. For encryption, use established libraries with modern algorithms."
	if src.isJSFamily() {
		suggestion = "For passwords, use bcrypt (12+ rounds) or Argon2: await bcrypt.hash(password, 12). For hashing, use SHA-256 or better. For encryption, use AES-256-GCM. Never roll your own crypto."
	}
	return one(models.Issue{
		Type:        models.SeverityCritical,
		Title:       "Weak cryptographic algorithm detected",
		Description: "MD5 and SHA1 are cryptographically broken and can be cracked in seconds. Base64 is encoding, not encryption. Using weak crypto for passwords means attackers can reverse them easily.",
		Suggestion:  suggestion,
	})
}

// hasWeakCrypto 命中以下任一即为真（均不区分大小写）:
//   - md5
//   - sha1 且其后不是数字（排除 sha128 之类）
//   - base64 其后不是 url，且同一行后续出现 password
func hasWeakCrypto(code string) bool {
	if md5Re.MatchString(code) {
		return true
	}
	for _, loc := range sha1Re.FindAllStringIndex(code, -1) {
		if end := loc[1]; end >= len(code) || !isDigit(code[end]) {
			return true
		}
	}
	for _, loc := range base64Re.FindAllStringIndex(code, -1) {
		rest := code[loc[1]:]
		if len(rest) >= 3 && strings.EqualFold(rest[:3], "url") {
			continue
		}
		if i := strings.IndexAny(rest, "\r\n"); i >= 0 {
			rest = rest[:i]
		}
		if strings.Contains(strings.ToLower(rest), "password") {
			return true
		}
	}
	return false
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }
