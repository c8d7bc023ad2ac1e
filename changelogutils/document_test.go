package changelogutils_test

import (
	"strings"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
	"github.com/spf13/afero"

	"github.com/bkrabach/releasekit/changelogutils"
)

var _ = Describe("Changelog document", func() {

	Context("EnsureDocument", func() {
		It("synthesizes the preamble when the file is absent", func() {
			fs := afero.NewMemMapFs()
			document, err := changelogutils.EnsureDocument(fs, "CHANGELOG.md", "trace-viewer")
			Expect(err).NotTo(HaveOccurred())
			Expect(document).To(ContainSubstring("# Changelog"))
			Expect(document).To(ContainSubstring("All notable changes to trace-viewer"))
			Expect(document).To(ContainSubstring("Keep a Changelog"))
			Expect(document).To(ContainSubstring("Semantic Versioning"))
		})

		It("returns existing contents as-is", func() {
			fs := afero.NewMemMapFs()
			existing := "# Changelog\n\ncustom preamble\n\n## [1.0.0] - 2024-01-01\n"
			Expect(afero.WriteFile(fs, "CHANGELOG.md", []byte(existing), 0644)).NotTo(HaveOccurred())
			document, err := changelogutils.EnsureDocument(fs, "CHANGELOG.md", "trace-viewer")
			Expect(err).NotTo(HaveOccurred())
			Expect(document).To(Equal(existing))
		})
	})

	Context("InsertSection", func() {
		It("appends the first section after the preamble", func() {
			document := changelogutils.Preamble("trace-viewer")
			updated, err := changelogutils.InsertSection(document, "1.0.0", "2024-01-01")
			Expect(err).NotTo(HaveOccurred())

			headers := sectionHeaders(updated)
			Expect(headers).To(Equal([]string{"## [1.0.0] - 2024-01-01"}))
			Expect(updated).To(ContainSubstring("### Added"))
			Expect(updated).To(ContainSubstring("### Changed"))
			Expect(updated).To(ContainSubstring("### Fixed"))
			Expect(updated).To(ContainSubstring("### Removed"))
		})

		It("refuses a duplicate section and leaves the document unchanged", func() {
			document := changelogutils.Preamble("trace-viewer")
			document, err := changelogutils.InsertSection(document, "1.0.0", "2024-01-01")
			Expect(err).NotTo(HaveOccurred())

			unchanged, err := changelogutils.InsertSection(document, "1.0.0", "2024-06-01")
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(BeEquivalentTo(changelogutils.SectionExistsError("1.0.0").Error()))
			Expect(unchanged).To(Equal(document))
		})

		It("inserts a new section strictly before existing ones, preserving their order", func() {
			document := changelogutils.Preamble("trace-viewer")
			var err error
			document, err = changelogutils.InsertSection(document, "1.4.0", "2023-10-01")
			Expect(err).NotTo(HaveOccurred())
			document, err = changelogutils.InsertSection(document, "1.5.0", "2023-12-01")
			Expect(err).NotTo(HaveOccurred())
			document, err = changelogutils.InsertSection(document, "2.0.0", "2024-02-01")
			Expect(err).NotTo(HaveOccurred())

			headers := sectionHeaders(document)
			Expect(headers).To(Equal([]string{
				"## [2.0.0] - 2024-02-01",
				"## [1.5.0] - 2023-12-01",
				"## [1.4.0] - 2023-10-01",
			}))
		})

		It("appends at the end of a sectionless document that lacks a trailing newline", func() {
			document := "# Changelog\n\nnotes without sections"
			updated, err := changelogutils.InsertSection(document, "0.1.0", "2024-01-01")
			Expect(err).NotTo(HaveOccurred())
			Expect(sectionHeaders(updated)).To(Equal([]string{"## [0.1.0] - 2024-01-01"}))
			Expect(updated).To(HavePrefix("# Changelog\n\nnotes without sections\n"))
		})
	})

	Context("WriteDocument", func() {
		It("persists the document", func() {
			fs := afero.NewMemMapFs()
			Expect(changelogutils.WriteDocument(fs, "CHANGELOG.md", "contents\n")).NotTo(HaveOccurred())
			data, err := afero.ReadFile(fs, "CHANGELOG.md")
			Expect(err).NotTo(HaveOccurred())
			Expect(string(data)).To(Equal("contents\n"))
		})
	})
})

func sectionHeaders(document string) []string {
	var headers []string
	for _, line := range strings.Split(document, "\n") {
		if strings.HasPrefix(line, changelogutils.SectionHeaderPrefix) {
			headers = append(headers, line)
		}
	}
	return headers
}
