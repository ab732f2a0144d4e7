package bram

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func writeMemFile(lines ...string) string {
	path := filepath.Join(GinkgoT().TempDir(), "init.mem")
	err := os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o644)
	Expect(err).NotTo(HaveOccurred())

	return path
}

func wordValues(words []Word) []uint64 {
	values := make([]uint64, len(words))
	for i, w := range words {
		v, ok := w.Uint64()
		Expect(ok).To(BeTrue())
		values[i] = v
	}

	return values
}

var _ = Describe("ParseWord", func() {
	It("should parse binary, most significant bit first", func() {
		w, err := ParseWord("000001101", 9)

		Expect(err).NotTo(HaveOccurred())
		Expect(w.Equal(NewWord(9, 13))).To(BeTrue())
	})

	It("should ignore trailing content", func() {
		w, err := ParseWord("0a1", 3)

		Expect(err).NotTo(HaveOccurred())
		Expect(w.Equal(NewWord(3, 0))).To(BeTrue())

		w, err = ParseWord("11 // comment", 3)
		Expect(err).NotTo(HaveOccurred())
		Expect(w.Equal(NewWord(3, 3))).To(BeTrue())
	})

	It("should ignore a carriage return", func() {
		w, err := ParseWord("101\r", 3)

		Expect(err).NotTo(HaveOccurred())
		Expect(w.Equal(NewWord(3, 5))).To(BeTrue())
	})

	It("should keep the low bits of long lines", func() {
		w, err := ParseWord("111010", 3)

		Expect(err).NotTo(HaveOccurred())
		Expect(w.Equal(NewWord(3, 0b010))).To(BeTrue())
	})

	It("should zero extend short lines", func() {
		w, err := ParseWord("1", 8)

		Expect(err).NotTo(HaveOccurred())
		Expect(w.Equal(NewWord(8, 1))).To(BeTrue())
	})

	It("should fail without a leading binary digit", func() {
		_, err := ParseWord("xyz", 3)

		var parseErr *ParseError
		Expect(errors.As(err, &parseErr)).To(BeTrue())
		Expect(parseErr.Content).To(Equal("xyz"))
	})

	It("should fail on empty lines", func() {
		_, err := ParseWord("", 3)

		Expect(err).To(HaveOccurred())
	})
})

var _ = Describe("Load", func() {
	It("should load one word per line", func() {
		words, err := Load(strings.NewReader("001\n010\n011\n"), 3)

		Expect(err).NotTo(HaveOccurred())
		Expect(wordValues(words)).To(Equal([]uint64{1, 2, 3}))
	})

	It("should accept a file without a final newline", func() {
		words, err := Load(strings.NewReader("001\n010"), 3)

		Expect(err).NotTo(HaveOccurred())
		Expect(words).To(HaveLen(2))
	})

	It("should report the line of a parse error", func() {
		_, err := Load(strings.NewReader("001\nxyz\n011\n"), 3)

		var parseErr *ParseError
		Expect(errors.As(err, &parseErr)).To(BeTrue())
		Expect(parseErr.Line).To(Equal(2))
		Expect(parseErr.Content).To(Equal("xyz"))
		Expect(err.Error()).To(Equal(`line 2: cannot parse "xyz" as a binary word`))
	})

	It("should load the values of a file", func() {
		lines := []string{}
		for v := 7; v <= 13; v++ {
			lines = append(lines, NewWord(9, uint64(v)).String())
		}

		words, err := LoadFile(writeMemFile(lines...), 9)

		Expect(err).NotTo(HaveOccurred())
		Expect(lines[0]).To(Equal("000000111"))
		Expect(wordValues(words)).To(Equal([]uint64{7, 8, 9, 10, 11, 12, 13}))
	})

	It("should name the file in parse errors", func() {
		path := writeMemFile("001", "abc")

		_, err := LoadFile(path, 3)

		var parseErr *ParseError
		Expect(errors.As(err, &parseErr)).To(BeTrue())
		Expect(parseErr.Path).To(Equal(path))
		Expect(err.Error()).To(ContainSubstring(path + ":2:"))
	})

	It("should fail if the file does not exist", func() {
		_, err := LoadFile(filepath.Join(GinkgoT().TempDir(), "none"), 3)

		Expect(errors.Is(err, os.ErrNotExist)).To(BeTrue())
	})
})
