package bram

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/bram/sim"
)

var _ = Describe("Builder", func() {
	It("should build a memory from a file", func() {
		domain := sim.NewDomain("Core", 500*sim.MHz)

		c, err := MakeBuilder().
			WithDepth(2).
			WithWidth(4).
			WithDomain(domain).
			WithInitFile(writeMemFile("1010", "0101")).
			Build("BRAM")

		Expect(err).NotTo(HaveOccurred())
		Expect(c.Name()).To(Equal("BRAM"))
		Expect(c.Domain()).To(BeIdenticalTo(domain))
		Expect(c.Depth()).To(Equal(2))
		Expect(c.Width()).To(Equal(4))
		Expect(outputStrings(c.Snapshot())).To(Equal([]string{"1010", "0101"}))
	})

	It("should use a default clock domain", func() {
		c, err := MakeBuilder().WithDepth(1).WithWidth(1).Build("BRAM")

		Expect(err).NotTo(HaveOccurred())
		Expect(c.Domain().Name()).To(Equal("Clk"))
		Expect(c.Domain().Freq()).To(Equal(1 * sim.GHz))
	})

	It("should start undefined without initial contents", func() {
		c, err := MakeBuilder().WithDepth(2).WithWidth(8).Build("BRAM")

		Expect(err).NotTo(HaveOccurred())
		Expect(outputStrings(c.Snapshot())).To(Equal([]string{"XXXXXXXX", "XXXXXXXX"}))
	})

	It("should fail if the file has fewer lines than the depth", func() {
		_, err := MakeBuilder().
			WithDepth(4).
			WithWidth(3).
			WithInitFile(writeMemFile("001", "010", "011")).
			Build("BRAM")

		var mismatch *DepthMismatchError
		Expect(errors.As(err, &mismatch)).To(BeTrue())
		Expect(mismatch.Depth).To(Equal(4))
		Expect(mismatch.Words).To(Equal(3))
	})

	It("should fail if the file has more lines than the depth", func() {
		_, err := MakeBuilder().
			WithDepth(2).
			WithWidth(3).
			WithInitFile(writeMemFile("001", "010", "011")).
			Build("BRAM")

		var mismatch *DepthMismatchError
		Expect(errors.As(err, &mismatch)).To(BeTrue())
	})

	It("should fail on a malformed file", func() {
		_, err := MakeBuilder().
			WithDepth(3).
			WithWidth(3).
			WithInitFile(writeMemFile("001", "xyz", "011")).
			Build("BRAM")

		var parseErr *ParseError
		Expect(errors.As(err, &parseErr)).To(BeTrue())
		Expect(parseErr.Content).To(Equal("xyz"))
	})

	It("should fail on init words of the wrong count or width", func() {
		_, err := MakeBuilder().
			WithDepth(2).
			WithWidth(3).
			WithInitWords([]Word{NewWord(3, 0)}).
			Build("BRAM")
		Expect(err).To(HaveOccurred())

		_, err = MakeBuilder().
			WithDepth(1).
			WithWidth(3).
			WithInitWords([]Word{NewWord(4, 0)}).
			Build("BRAM")
		Expect(err).To(MatchError(ContainSubstring("width 4")))
	})

	It("should reject invalid configurations", func() {
		_, err := MakeBuilder().WithWidth(3).Build("BRAM")
		Expect(err).To(MatchError(ContainSubstring("depth must be positive")))

		_, err = MakeBuilder().WithDepth(1).WithWidth(-1).Build("BRAM")
		Expect(err).To(HaveOccurred())

		_, err = MakeBuilder().WithDepth(1).WithDomain(nil).Build("BRAM")
		Expect(err).To(HaveOccurred())

		_, err = MakeBuilder().
			WithDepth(1).
			WithInitFile("a.mem").
			WithInitWords([]Word{NewWord(0, 0)}).
			Build("BRAM")
		Expect(err).To(MatchError(ContainSubstring("both")))
	})

	It("should panic on invalid names", func() {
		Expect(func() {
			_, _ = MakeBuilder().WithDepth(1).Build("")
		}).To(Panic())
	})
})
