// Package paths resolves the directory layout of a casebook instance.
//
// One instance is a directory holding the test-case tree, the profile
// checklist and the attachment payload area:
//
//	<instanceRoot>/testcases/<module>/<category>/<TestCaseId>.xml
//	<instanceRoot>/testcases/profiles.xml
//	<instanceRoot>/testcases/profiles-template.xml
//	<instanceRoot>/_attachments/<cleanTestcaseId>/...
package paths

import (
	"os"
	"path/filepath"
)

// Well-known names inside an instance.
const (
	TestcasesDirName     = "testcases"
	AttachmentsDirName   = "_attachments"
	ProfilesFileName     = "profiles.xml"
	ProfilesTemplateName = "profiles-template.xml"
	ConfigFileName       = "casebook.yaml"
)

// EnvInstanceDir overrides the instance directory when no flag is given.
const EnvInstanceDir = "CASEBOOK_INSTANCE_DIR"

// ResolveInstanceDir returns the instance directory following the
// precedence chain: flag > CASEBOOK_INSTANCE_DIR env > current directory.
func ResolveInstanceDir(flag string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if env := os.Getenv(EnvInstanceDir); env != "" {
		return filepath.Abs(env)
	}
	return os.Getwd()
}

// TestcasesDir returns the root of the module/category/testcase tree.
func TestcasesDir(instanceDir string) string {
	return filepath.Join(instanceDir, TestcasesDirName)
}

// AttachmentsDir returns the payload area root.
func AttachmentsDir(instanceDir string) string {
	return filepath.Join(instanceDir, AttachmentsDirName)
}

// ConfigFile returns the per-instance configuration file path.
func ConfigFile(instanceDir string) string {
	return filepath.Join(instanceDir, ConfigFileName)
}

// TestcaseFile returns the document path for one test case.
func TestcaseFile(instanceDir, module, category, id string) string {
	return filepath.Join(TestcasesDir(instanceDir), module, category, id+".xml")
}

// ProfilesFile returns the checklist document to read: the filled
// profiles.xml when present, otherwise the unfilled template. The second
// return reports whether either file exists.
func ProfilesFile(instanceDir string) (string, bool) {
	filled := filepath.Join(TestcasesDir(instanceDir), ProfilesFileName)
	if fileExists(filled) {
		return filled, true
	}
	template := filepath.Join(TestcasesDir(instanceDir), ProfilesTemplateName)
	if fileExists(template) {
		return template, true
	}
	return filled, false
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
