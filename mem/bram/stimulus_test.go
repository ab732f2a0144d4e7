package bram

import (
	"errors"
	"math"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("ReadStimulus", func() {
	It("should read cycle inputs", func() {
		inputs, err := ReadStimulus(strings.NewReader(`read_addr,write_enable,write_addr,write_data
# cycle 0
0,0,x,x
1,1,2,111

2, false, 0, 000
x,true,-1,x
`), 3)

		Expect(err).NotTo(HaveOccurred())
		Expect(inputs).To(HaveLen(4))

		Expect(inputs[0].ReadAddr).To(Equal(Addr(0)))
		Expect(inputs[0].WriteEnable).To(BeFalse())
		Expect(inputs[0].WriteAddr.IsDefined()).To(BeFalse())
		Expect(inputs[0].WriteData.Equal(Undefined(3))).To(BeTrue())

		Expect(inputs[1].WriteEnable).To(BeTrue())
		Expect(inputs[1].WriteAddr).To(Equal(Addr(2)))
		Expect(inputs[1].WriteData.Equal(NewWord(3, 7))).To(BeTrue())

		Expect(inputs[2].WriteData.Equal(NewWord(3, 0))).To(BeTrue())

		Expect(inputs[3].ReadAddr.IsDefined()).To(BeFalse())
		Expect(inputs[3].WriteAddr.IsDefined()).To(BeFalse())
	})

	It("should report the record and field of an error", func() {
		_, err := ReadStimulus(strings.NewReader("0,0,0,0\n0,maybe,0,0\n"), 3)

		var stimErr *StimulusError
		Expect(errors.As(err, &stimErr)).To(BeTrue())
		Expect(stimErr.Record).To(Equal(2))
		Expect(stimErr.Field).To(Equal("write_enable"))
	})

	It("should report malformed write data", func() {
		_, err := ReadStimulus(strings.NewReader("0,1,0,zz\n"), 3)

		var parseErr *ParseError
		Expect(errors.As(err, &parseErr)).To(BeTrue())
		Expect(parseErr.Content).To(Equal("zz"))
	})

	It("should reject records with a wrong number of fields", func() {
		_, err := ReadStimulus(strings.NewReader("0,0,0\n"), 3)

		Expect(err).To(HaveOccurred())
	})
})

var _ = Describe("ParseAddress", func() {
	It("should parse addresses", func() {
		Expect(ParseAddress("12")).To(Equal(Addr(12)))
		Expect(ParseAddress(" 3 ")).To(Equal(Addr(3)))
		Expect(ParseAddress("X")).To(Equal(UndefinedAddr()))
		Expect(ParseAddress("-4")).To(Equal(UndefinedAddr()))
	})

	It("should parse addresses above the int64 range", func() {
		Expect(ParseAddress("18446744073709551615")).
			To(Equal(Addr(math.MaxUint64)))

		_, err := ParseAddress("18446744073709551616")
		Expect(err).To(HaveOccurred())

		_, err = ParseAddress("-99999999999999999999")
		Expect(err).To(HaveOccurred())
	})

	It("should fail on garbage", func() {
		_, err := ParseAddress("ten")
		Expect(err).To(HaveOccurred())

		_, err = ParseAddress("-ten")
		Expect(err).To(HaveOccurred())
	})
})
