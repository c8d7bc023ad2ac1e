package versionutils_test

import (
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
	"github.com/spf13/afero"

	"github.com/bkrabach/releasekit/versionutils"
)

var _ = Describe("CurrentVersion", func() {

	var fs afero.Fs

	BeforeEach(func() {
		fs = afero.NewMemMapFs()
	})

	write := func(path, content string) {
		Expect(afero.WriteFile(fs, path, []byte(content), 0644)).NotTo(HaveOccurred())
	}

	It("reads a root-level TOML version", func() {
		write("manifest.toml", `version = "0.3.1"`+"\n")
		version, err := versionutils.CurrentVersion(fs, "manifest.toml")
		Expect(err).NotTo(HaveOccurred())
		Expect(version.String()).To(Equal("0.3.1"))
	})

	It("reads a version nested under the project table", func() {
		write("pyproject.toml", `[project]
name = "trace-viewer"
version = "1.4.0"
`)
		version, err := versionutils.CurrentVersion(fs, "pyproject.toml")
		Expect(err).NotTo(HaveOccurred())
		Expect(version.String()).To(Equal("1.4.0"))
	})

	It("falls back to the top-of-line declaration for non-TOML files", func() {
		write("version.cfg", "# settings\nversion = \"2.0.0\"\n")
		version, err := versionutils.CurrentVersion(fs, "version.cfg")
		Expect(err).NotTo(HaveOccurred())
		Expect(version.String()).To(Equal("2.0.0"))
	})

	It("errors when no version is declared", func() {
		write("pyproject.toml", "[project]\nname = \"trace-viewer\"\n")
		_, err := versionutils.CurrentVersion(fs, "pyproject.toml")
		Expect(err).To(HaveOccurred())
		Expect(err.Error()).To(BeEquivalentTo(versionutils.ManifestVersionMissingError("pyproject.toml").Error()))
	})

	It("errors when the declared version is malformed", func() {
		write("pyproject.toml", "[project]\nversion = \"1.2\"\n")
		_, err := versionutils.CurrentVersion(fs, "pyproject.toml")
		Expect(err).To(HaveOccurred())
	})

	It("errors when the manifest is absent", func() {
		_, err := versionutils.CurrentVersion(fs, "missing.toml")
		Expect(err).To(HaveOccurred())
	})
})
