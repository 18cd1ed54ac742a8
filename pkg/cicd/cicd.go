// Package cicd 分析 CI/CD 流水线配置：识别平台，检查常见安全问题，核对最佳实践
package cicd

import (
	"regexp"

	"github.com/yeisme/codescope/pkg/models"
	"github.com/yeisme/codescope/pkg/utils/mathx"
)

// 平台名称
const (
	GitHubActions = "GitHub Actions"
	GitLabCI      = "GitLab CI"
	Jenkins       = "Jenkins"
	CircleCI      = "CircleCI"
	TravisCI      = "Travis CI"
	AzureDevOps   = "Azure DevOps"
)

type platform struct {
	name   string
	detect *regexp.Regexp
}

// platforms 按顺序匹配，先命中者为准
var platforms = []platform{
	{GitHubActions, regexp.MustCompile(`(?i)name:\s*['"]?[\w\s-]+['"]?\s*\non:|uses:\s*actions/|runs-on:\s*ubuntu|\.github/workflows`)},
	{GitLabCI, regexp.MustCompile(`(?i)stages:|\.gitlab-ci\.yml|gitlab-runner|script:|before_script:|after_script:`)},
	{Jenkins, regexp.MustCompile(`(?i)pipeline\s*{|Jenkinsfile|agent\s*{|stages\s*{|sh\s*['"]|bat\s*['"]`)},
	{CircleCI, regexp.MustCompile(`(?i)version:\s*2|circleci|orbs:|executors:|\.circleci/config`)},
	{TravisCI, regexp.MustCompile(`(?i)\.travis\.yml|travis_retry|travis_wait|language:\s*\w+`)},
	{AzureDevOps, regexp.MustCompile(`(?i)azure-pipelines|trigger:|pool:|vmImage:|AzureDevOps`)},
}

var (
	secretRe   = regexp.MustCompile(`(?i)password\s*[:=]\s*['"][^'"]+['"]|api[_-]?key\s*[:=]\s*['"][^'"]+['"]|secret\s*[:=]\s*['"][^'"]+['"]`)
	echoVarRe  = regexp.MustCompile(`(?i)echo\s*\$|print\s*\$`)
	maskRe     = regexp.MustCompile(`(?i)::add-mask::|masked`)
	latestRe   = regexp.MustCompile(`(?i)uses:\s*\S+@latest|image:\s*\S+:latest`)
	checkoutRe = regexp.MustCompile(`(?i)actions/checkout`)
)

type practice struct {
	name      string
	re        *regexp.Regexp
	done, not string
}

var practices = []practice{
	{"Dependency Caching", regexp.MustCompile(`(?i)cache:|actions/cache|restore_cache|save_cache|cacheConfig`),
		"Dependencies are cached for faster builds", "Enable caching to speed up builds by 50-80%"},
	{"Parallel Execution", regexp.MustCompile(`(?i)parallel:|strategy:|matrix:|needs:|stages:`),
		"Jobs run in parallel for faster pipelines", "Consider parallelizing independent jobs"},
	{"Security Scanning", regexp.MustCompile(`(?i)codeql|snyk|trivy|dependabot|security.*scan|vulnerability`),
		"Security scanning is configured", "Add security scanning (CodeQL, Snyk, Trivy)"},
	{"Automated Testing", regexp.MustCompile(`(?i)test|jest|pytest|npm\s+test|yarn\s+test|go\s+test`),
		"Tests run automatically in the pipeline", "Add automated tests to catch regressions"},
	{"Branch Rules", regexp.MustCompile(`(?i)environment:|branches:|on:\s*\n\s*push:|pull_request:`),
		"Pipeline has branch/environment rules", "Define branch triggers and protection rules"},
	{"Artifact Management", regexp.MustCompile(`(?i)artifacts:|upload-artifact|download-artifact|store_artifacts`),
		"Build artifacts are stored", "Store artifacts for debugging and deployment"},
}

// DetectPlatform 返回第一个命中的平台名，没有命中时为空串
func DetectPlatform(text string) string {
	for _, p := range platforms {
		if p.detect.MatchString(text) {
			return p.name
		}
	}
	return ""
}

// Analyze 分析流水线配置文本
//
// 无法识别平台时返回 Detected 为 false、安全分 100 的结果，不报错
func Analyze(text string) *models.CICDAnalysisResult {
	name := DetectPlatform(text)
	if name == "" {
		return &models.CICDAnalysisResult{
			Issues:        []models.CICDIssue{},
			BestPractices: []models.BestPractice{},
			SecurityScore: 100,
		}
	}

	issues := checkSecurity(text, name)
	best := make([]models.BestPractice, 0, len(practices))
	implemented := 0
	for _, p := range practices {
		ok := p.re.MatchString(text)
		desc := p.not
		if ok {
			desc = p.done
			implemented++
		}
		best = append(best, models.BestPractice{Name: p.name, Implemented: ok, Description: desc})
	}

	return &models.CICDAnalysisResult{
		Detected:      true,
		Platform:      &name,
		Issues:        issues,
		BestPractices: best,
		SecurityScore: SecurityScore(issues, implemented, len(practices)),
	}
}

func checkSecurity(text, name string) []models.CICDIssue {
	issues := make([]models.CICDIssue, 0)
	add := func(sev models.Severity, title, desc, suggestion string) {
		issues = append(issues, models.CICDIssue{
			Type:        sev,
			Title:       title,
			Description: desc,
			Suggestion:  suggestion,
			Platform:    name,
		})
	}

	if secretRe.MatchString(text) {
		add(models.SeverityCritical, "Hardcoded Secrets in Pipeline",
			"Credentials are exposed in the CI/CD configuration. These can be extracted from repository history.",
			"Use secrets management: GitHub Secrets (${{ secrets.MY_SECRET }}), GitLab CI Variables, or Azure Key Vault.")
	}
	if echoVarRe.MatchString(text) && !maskRe.MatchString(text) {
		add(models.SeverityWarning, "Potential Secret Exposure in Logs",
			"Environment variables are echoed without masking, potentially exposing secrets in build logs.",
			`Use secret masking: echo "::add-mask::$SECRET" for GitHub Actions, or [[ -n "$SECRET" ]] && echo "***"`)
	}
	if latestRe.MatchString(text) {
		add(models.SeverityWarning, `Using "latest" Tag for Dependencies`,
			`Using "latest" tags can cause unexpected build failures and security vulnerabilities.`,
			"Pin versions: uses: actions/checkout@v4 or image: node:20.10.0 for reproducible builds.")
	}
	if name == GitHubActions && !checkoutRe.MatchString(text) {
		add(models.SeverityWarning, "Missing Checkout Step",
			"GitHub Actions workflow may not have a checkout step to fetch the code.",
			"Add: - uses: actions/checkout@v4 as the first step in your job.")
	}
	return issues
}

// SecurityScore 100 减去每个严重问题 25 分、每个警告 10 分，再按最佳实践完成比例最多加 20 分
func SecurityScore(issues []models.CICDIssue, implemented, total int) int {
	score := 100.0
	for _, is := range issues {
		switch is.Type {
		case models.SeverityCritical:
			score -= 25
		case models.SeverityWarning:
			score -= 10
		}
	}
	if total > 0 {
		score += float64(implemented) / float64(total) * 20
	}
	return mathx.Round(mathx.Clamp(score, 0, 100))
}
