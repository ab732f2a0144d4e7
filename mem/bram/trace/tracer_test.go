package trace_test

import (
	"context"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/bram/datarecording"
	"github.com/sarchlab/bram/mem/bram"
	"github.com/sarchlab/bram/mem/bram/trace"
	"github.com/sarchlab/bram/sim"
)

var _ = Describe("Tracer", func() {
	var (
		recorder datarecording.DataRecorder
		reader   datarecording.DataReader
		c        *bram.Comp
	)

	BeforeEach(func() {
		path := filepath.Join(GinkgoT().TempDir(), "trace")
		recorder = datarecording.New(path)

		var err error
		reader, err = datarecording.NewReader(path + ".sqlite3")
		Expect(err).NotTo(HaveOccurred())
		reader.MapTable(trace.TableName, trace.CycleEntry{})

		c, err = bram.MakeBuilder().
			WithDepth(3).
			WithWidth(3).
			WithDomain(sim.NewDomain("Mem", 100*sim.MHz)).
			WithInitWords([]bram.Word{
				bram.NewWord(3, 1), bram.NewWord(3, 2), bram.NewWord(3, 3),
			}).
			Build("BRAM")
		Expect(err).NotTo(HaveOccurred())

		c.AcceptHook(trace.NewTracer(recorder))
	})

	AfterEach(func() {
		Expect(reader.Close()).To(Succeed())
		Expect(recorder.Close()).To(Succeed())
	})

	It("should record one row per cycle", func() {
		c.Run([]bram.CycleInput{
			{ReadAddr: bram.Addr(0)},
			{
				ReadAddr:    bram.Addr(1),
				WriteEnable: true,
				WriteAddr:   bram.Addr(2),
				WriteData:   bram.NewWord(3, 7),
			},
			{ReadAddr: bram.Addr(2)},
		})
		recorder.Flush()

		results, total, err := reader.Query(context.Background(),
			trace.TableName, datarecording.QueryParams{OrderBy: "Cycle"})

		Expect(err).NotTo(HaveOccurred())
		Expect(total).To(Equal(3))

		first := results[0].(*trace.CycleEntry)
		Expect(first.Memory).To(Equal("BRAM"))
		Expect(first.Domain).To(Equal("Mem"))
		Expect(first.Output).To(Equal("XXX"))
		Expect(first.Read).To(Equal("001"))
		Expect(first.WriteAddr).To(Equal("X"))

		second := results[1].(*trace.CycleEntry)
		Expect(second.Time).To(BeNumerically("~", 1e-8, 1e-15))
		Expect(second.Wrote).To(BeTrue())
		Expect(second.WriteData).To(Equal("111"))
		Expect(second.Output).To(Equal("001"))

		third := results[2].(*trace.CycleEntry)
		Expect(third.Read).To(Equal("111"))
		Expect(third.Output).To(Equal("010"))
	})
})
