package versionutils_test

import (
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"github.com/bkrabach/releasekit/versionutils"
)

var _ = Describe("Version", func() {

	getVersion := func(major, minor, patch int) *versionutils.Version {
		return &versionutils.Version{
			Major: major,
			Minor: minor,
			Patch: patch,
		}
	}

	Context("MatchesRegex", func() {
		It("works", func() {
			Expect(versionutils.MatchesRegex("0.1.2")).To(BeTrue())
			Expect(versionutils.MatchesRegex("0.0.0")).To(BeTrue())
			Expect(versionutils.MatchesRegex("10.20.30")).To(BeTrue())
			Expect(versionutils.MatchesRegex("v0.1.2")).To(BeFalse())
			Expect(versionutils.MatchesRegex("1.2")).To(BeFalse())
			Expect(versionutils.MatchesRegex("1.2.3.4")).To(BeFalse())
			Expect(versionutils.MatchesRegex("a.b.c")).To(BeFalse())
			Expect(versionutils.MatchesRegex("1.2.3-rc1")).To(BeFalse())
			Expect(versionutils.MatchesRegex(" 1.2.3")).To(BeFalse())
		})
	})

	Context("ParseVersion", func() {
		matches := func(version string, major, minor, patch int) bool {
			parsed, err := versionutils.ParseVersion(version)
			return err == nil && (*parsed == *getVersion(major, minor, patch))
		}

		It("works", func() {
			Expect(matches("0.0.0", 0, 0, 0)).To(BeTrue())
			Expect(matches("0.1.2", 0, 1, 2)).To(BeTrue())
			Expect(matches("0.1.2", 0, 1, 3)).To(BeFalse())
		})

		It("round trips through the string form", func() {
			for _, s := range []string{"0.0.0", "0.3.1", "1.2.3", "10.0.100"} {
				parsed, err := versionutils.ParseVersion(s)
				Expect(err).NotTo(HaveOccurred())
				reparsed, err := versionutils.ParseVersion(parsed.String())
				Expect(err).NotTo(HaveOccurred())
				Expect(reparsed).To(Equal(parsed))
			}
		})

		It("errors when an invalid version is provided", func() {
			for _, s := range []string{"1.2", "a.b.c", "1.2.3.4", "v1.2.3", ""} {
				parsed, err := versionutils.ParseVersion(s)
				Expect(err).To(HaveOccurred())
				Expect(err.Error()).To(BeEquivalentTo(versionutils.InvalidVersionFormatError(s).Error()))
				Expect(parsed).To(BeNil())
			}
		})
	})

	Context("ParseTag", func() {
		It("requires the v prefix", func() {
			parsed, err := versionutils.ParseTag("v0.1.2")
			Expect(err).NotTo(HaveOccurred())
			Expect(parsed).To(Equal(getVersion(0, 1, 2)))

			_, err = versionutils.ParseTag("0.1.2")
			Expect(err).To(HaveOccurred())
		})
	})

	Context("Tag", func() {
		It("prefixes the canonical form with v", func() {
			Expect(getVersion(0, 3, 2).Tag()).To(Equal("v0.3.2"))
		})
	})

	Context("IsGreaterThan", func() {
		expectResult := func(greater, lesser *versionutils.Version, expected bool) {
			Expect(greater.IsGreaterThan(lesser)).To(BeEquivalentTo(expected))
		}

		It("works", func() {
			expectResult(getVersion(0, 1, 2), getVersion(0, 0, 1), true)
			expectResult(getVersion(0, 0, 1), getVersion(0, 1, 2), false)
			expectResult(getVersion(1, 0, 0), getVersion(0, 9, 9), true)
			expectResult(getVersion(1, 2, 3), getVersion(1, 2, 3), false)
		})
	})

	Context("Bump", func() {
		expectBump := func(start *versionutils.Version, directive versionutils.BumpDirective, expected *versionutils.Version) {
			bumped, err := start.Bump(directive)
			Expect(err).NotTo(HaveOccurred())
			Expect(bumped).To(Equal(expected))
		}

		It("increments the requested component and zeroes the lower ones", func() {
			expectBump(getVersion(1, 2, 3), versionutils.BumpDirective{Type: versionutils.BumpMajor}, getVersion(2, 0, 0))
			expectBump(getVersion(1, 2, 3), versionutils.BumpDirective{Type: versionutils.BumpMinor}, getVersion(1, 3, 0))
			expectBump(getVersion(1, 2, 3), versionutils.BumpDirective{Type: versionutils.BumpPatch}, getVersion(1, 2, 4))
			expectBump(getVersion(0, 3, 1), versionutils.BumpDirective{Type: versionutils.BumpPatch}, getVersion(0, 3, 2))
		})

		It("does not mutate the receiver", func() {
			start := getVersion(1, 2, 3)
			_, err := start.Bump(versionutils.BumpDirective{Type: versionutils.BumpMajor})
			Expect(err).NotTo(HaveOccurred())
			Expect(start).To(Equal(getVersion(1, 2, 3)))
		})

		It("returns an explicit version verbatim, with no ordering check", func() {
			expectBump(getVersion(1, 0, 0), versionutils.BumpDirective{Type: versionutils.BumpExplicit, Explicit: "1.2.3"}, getVersion(1, 2, 3))
			// Lower than current is accepted; the orchestrator only warns.
			expectBump(getVersion(2, 0, 0), versionutils.BumpDirective{Type: versionutils.BumpExplicit, Explicit: "0.1.0"}, getVersion(0, 1, 0))
		})

		It("rejects a malformed explicit version", func() {
			_, err := getVersion(1, 0, 0).Bump(versionutils.BumpDirective{Type: versionutils.BumpExplicit, Explicit: "1.2"})
			Expect(err).To(HaveOccurred())
		})
	})

	Context("ParseBumpDirective", func() {
		It("recognizes the named bump types", func() {
			directive, err := versionutils.ParseBumpDirective("minor")
			Expect(err).NotTo(HaveOccurred())
			Expect(directive.Type).To(Equal(versionutils.BumpMinor))
		})

		It("treats anything else as an explicit version", func() {
			directive, err := versionutils.ParseBumpDirective("1.2.3")
			Expect(err).NotTo(HaveOccurred())
			Expect(directive.Type).To(Equal(versionutils.BumpExplicit))
			Expect(directive.Explicit).To(Equal("1.2.3"))

			_, err = versionutils.ParseBumpDirective("not-a-version")
			Expect(err).To(HaveOccurred())
		})
	})
})
