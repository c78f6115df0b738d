package wasmhost

import (
	"context"
	stderrors "errors"
	"sort"
	"unsafe"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"go.uber.org/zap"

	"github.com/wippyai/ad936x/errors"
	"github.com/wippyai/ad936x/internal/admalloc"
	"github.com/wippyai/ad936x/noos"
)

// ModuleName is the name the guest is instantiated under.
const ModuleName = "ad9361"

// requiredExports must be present for a module to load.
var requiredExports = []string{"ad9361_init", "ad9361_remove"}

// Options configures Load.
type Options struct {
	// HeapWords is the size of the guest heap in 32-bit words.
	HeapWords        int
	// MemoryLimitPages caps guest memory. Zero keeps the wazero default.
	MemoryLimitPages uint32
	Logger           *zap.Logger
}

// DefaultOptions returns a 64 KiB heap and a 16 MiB memory cap.
func DefaultOptions() Options {
	return Options{
		HeapWords:        16384,
		MemoryLimitPages: 256,
	}
}

// Driver is a loaded guest build of the driver.
type Driver struct {
	ctx    context.Context
	rt     wazero.Runtime
	mod    api.Module
	mem    guestMemory
	host   *host
	layout layout
	log    *zap.Logger
}

var _ noos.Driver = (*Driver)(nil)

// guestPhy carries the guest address of struct ad9361_rf_phy behind a
// noos.Phy.
type guestPhy struct {
	addr uint32
}

// Load compiles and instantiates a driver module. ctx is kept for the
// driver calls made through the returned Driver.
func Load(ctx context.Context, wasm []byte, opts Options) (*Driver, error) {
	log := opts.Logger
	if log == nil {
		log = Logger()
	}
	if opts.HeapWords <= 0 {
		opts.HeapWords = DefaultOptions().HeapWords
	}

	cfg := wazero.NewRuntimeConfig()
	if opts.MemoryLimitPages > 0 {
		cfg = cfg.WithMemoryLimitPages(opts.MemoryLimitPages)
	}
	rt := wazero.NewRuntimeWithConfig(ctx, cfg)

	d, err := load(ctx, rt, wasm, opts.HeapWords, log)
	if err != nil {
		_ = rt.Close(ctx)
		return nil, err
	}
	return d, nil
}

func load(ctx context.Context, rt wazero.Runtime, wasm []byte, heapWords int, log *zap.Logger) (*Driver, error) {
	h := &host{log: log}
	h.arena.SetLogger(log)
	if _, err := h.instantiate(ctx, rt); err != nil {
		return nil, err
	}

	compiled, err := rt.CompileModule(ctx, wasm)
	if err != nil {
		return nil, errors.Load("compile driver module", err)
	}
	if missing := missingExports(compiled); len(missing) > 0 {
		return nil, errors.NewMissingExportsError(ModuleName, missing)
	}

	mod, err := rt.InstantiateModule(ctx, compiled, wazero.NewModuleConfig().
		WithName(ModuleName).
		WithStartFunctions("_initialize"))
	if err != nil {
		return nil, errors.Instantiation(err)
	}

	m := guestMemory{mem: mod.Memory()}
	l := planLayout(m.mem.Size(), heapWords)
	if n := l.pages(m.mem.Size()); n > 0 {
		if _, ok := m.mem.Grow(n); !ok {
			return nil, errors.New(errors.PhaseLoad, errors.KindHeapExhausted).
				Detail("cannot grow guest memory by %d pages for a %d word heap", n, heapWords).
				Build()
		}
	}
	h.layout = l

	log.Debug("driver module loaded",
		zap.Uint32("params", l.params),
		zap.Uint32("heap", l.heap),
		zap.Int("heap_words", l.words),
		zap.Uint32("memory_bytes", m.mem.Size()))

	return &Driver{
		ctx:    ctx,
		rt:     rt,
		mod:    mod,
		mem:    m,
		host:   h,
		layout: l,
		log:    log,
	}, nil
}

func missingExports(c wazero.CompiledModule) []string {
	var missing []string
	if _, ok := c.ExportedMemories()["memory"]; !ok {
		missing = append(missing, "memory")
	}
	fns := c.ExportedFunctions()
	for _, name := range requiredExports {
		if _, ok := fns[name]; !ok {
			missing = append(missing, name)
		}
	}
	sort.Strings(missing)
	return missing
}

// Close releases the runtime. The Driver must not be used afterwards.
func (d *Driver) Close(ctx context.Context) error {
	return d.rt.Close(ctx)
}

// HeapUsed reports the guest heap words in use and the heap capacity.
func (d *Driver) HeapUsed() (used, capacity int) {
	return d.host.arena.Used(), d.host.arena.Capacity()
}

// Has reports whether the guest exports the named entry point.
func (d *Driver) Has(name string) bool {
	return d.mod.ExportedFunction(name) != nil
}

// call runs one export. Violations raised by host functions surface
// unchanged; any other failure is a guest trap.
func (d *Driver) call(op string, args ...uint64) int32 {
	fn := d.mod.ExportedFunction(op)
	if fn == nil {
		d.log.Debug("driver export missing", zap.String("op", op))
		return noos.EOPNOTSUPP
	}
	res, err := fn.Call(d.ctx, args...)
	if err != nil {
		var v *errors.Violation
		if stderrors.As(err, &v) {
			panic(v)
		}
		errors.Violate(errors.GuestTrap(op, err))
	}
	if len(res) == 0 {
		return noos.OK
	}
	return api.DecodeI32(res[0])
}

func phyAddr(phy noos.Phy) uint64 {
	if phy == nil {
		return 0
	}
	return api.EncodeU32((*guestPhy)(phy).addr)
}

func (d *Driver) invoke(op string, phy noos.Phy, args ...uint64) int32 {
	return d.call(op, append([]uint64{phyAddr(phy)}, args...)...)
}

// out calls op with the first out-value cell as its last argument.
func (d *Driver) out(op string, phy noos.Phy, args ...uint64) (uint32, int32) {
	cell := d.layout.cell(0)
	d.mem.putU64(cell, 0)
	rc := d.invoke(op, phy, append(args, api.EncodeU32(cell))...)
	return cell, rc
}

func (d *Driver) getU32(op string, phy noos.Phy, v *uint32, args ...uint64) int32 {
	cell, rc := d.out(op, phy, args...)
	if rc == noos.OK {
		*v = d.mem.u32(cell)
	}
	return rc
}

func (d *Driver) getU8(op string, phy noos.Phy, v *uint8, args ...uint64) int32 {
	cell, rc := d.out(op, phy, args...)
	if rc == noos.OK {
		*v = d.mem.u8(cell)
	}
	return rc
}

func (d *Driver) getU64(op string, phy noos.Phy, v *uint64) int32 {
	cell, rc := d.out(op, phy)
	if rc == noos.OK {
		*v = d.mem.u64(cell)
	}
	return rc
}

// Init stores params in guest memory, resets the guest heap and runs
// ad9361_init. Platform hooks the guest calls go to env.
func (d *Driver) Init(env *noos.Env, phy *noos.Phy, params *noos.InitParam) int32 {
	d.host.env = env
	d.host.arena.Init(admalloc.Addr(d.layout.heap), d.layout.words, admalloc.Addr(d.layout.scratch), d.mem)
	d.mem.putU32(d.layout.errno, 0)
	d.mem.store(d.layout.params, params)

	cell := d.layout.cell(0)
	d.mem.putU32(cell, 0)
	rc := d.call("ad9361_init", api.EncodeU32(cell), api.EncodeU32(d.layout.params))
	if rc == noos.OK {
		*phy = noos.Phy(unsafe.Pointer(&guestPhy{addr: d.mem.u32(cell)}))
	}
	used, capacity := d.HeapUsed()
	d.log.Debug("guest init", zap.Int32("status", rc), zap.Int("heap_used", used), zap.Int("heap_capacity", capacity))
	return rc
}

func (d *Driver) Remove(phy noos.Phy) int32 {
	return d.invoke("ad9361_remove", phy)
}

func (d *Driver) SetRxRfGain(phy noos.Phy, ch uint8, gainDB int32) int32 {
	return d.invoke("ad9361_set_rx_rf_gain", phy, api.EncodeU32(uint32(ch)), api.EncodeI32(gainDB))
}

func (d *Driver) GetRxRfGain(phy noos.Phy, ch uint8, gainDB *int32) int32 {
	var v uint32
	rc := d.getU32("ad9361_get_rx_rf_gain", phy, &v, api.EncodeU32(uint32(ch)))
	if rc == noos.OK {
		*gainDB = int32(v)
	}
	return rc
}

func (d *Driver) SetRxRfBandwidth(phy noos.Phy, hz uint32) int32 {
	return d.invoke("ad9361_set_rx_rf_bandwidth", phy, api.EncodeU32(hz))
}

func (d *Driver) GetRxRfBandwidth(phy noos.Phy, hz *uint32) int32 {
	return d.getU32("ad9361_get_rx_rf_bandwidth", phy, hz)
}

func (d *Driver) SetRxSamplingFreq(phy noos.Phy, hz uint32) int32 {
	return d.invoke("ad9361_set_rx_sampling_freq", phy, api.EncodeU32(hz))
}

func (d *Driver) GetRxSamplingFreq(phy noos.Phy, hz *uint32) int32 {
	return d.getU32("ad9361_get_rx_sampling_freq", phy, hz)
}

func (d *Driver) SetRxLoFreq(phy noos.Phy, hz uint64) int32 {
	return d.invoke("ad9361_set_rx_lo_freq", phy, hz)
}

func (d *Driver) GetRxLoFreq(phy noos.Phy, hz *uint64) int32 {
	return d.getU64("ad9361_get_rx_lo_freq", phy, hz)
}

func (d *Driver) SetRxLoIntExt(phy noos.Phy, intExt uint8) int32 {
	return d.invoke("ad9361_set_rx_lo_int_ext", phy, api.EncodeU32(uint32(intExt)))
}

func (d *Driver) GetRxRssi(phy noos.Phy, ch uint8, rssi *noos.RFRSSI) int32 {
	cell, rc := d.out("ad9361_get_rx_rssi", phy, api.EncodeU32(uint32(ch)))
	if rc == noos.OK {
		d.mem.load(cell, rssi)
	}
	return rc
}

func (d *Driver) SetRxGainControlMode(phy noos.Phy, ch uint8, mode uint8) int32 {
	return d.invoke("ad9361_set_rx_gain_control_mode", phy, api.EncodeU32(uint32(ch)), api.EncodeU32(uint32(mode)))
}

func (d *Driver) GetRxGainControlMode(phy noos.Phy, ch uint8, mode *uint8) int32 {
	return d.getU8("ad9361_get_rx_gain_control_mode", phy, mode, api.EncodeU32(uint32(ch)))
}

// SetRxFirConfig passes the config by address, as the wasm32 C ABI does
// for structs passed by value.
func (d *Driver) SetRxFirConfig(phy noos.Phy, cfg noos.RxFIRConfig) int32 {
	d.mem.store(d.layout.fir, &cfg)
	return d.invoke("ad9361_set_rx_fir_config", phy, api.EncodeU32(d.layout.fir))
}

func (d *Driver) SetRxFirEnDis(phy noos.Phy, en uint8) int32 {
	return d.invoke("ad9361_set_rx_fir_en_dis", phy, api.EncodeU32(uint32(en)))
}

func (d *Driver) GetRxFirEnDis(phy noos.Phy, en *uint8) int32 {
	return d.getU8("ad9361_get_rx_fir_en_dis", phy, en)
}

func (d *Driver) SetRxRfPortInput(phy noos.Phy, mode uint32) int32 {
	return d.invoke("ad9361_set_rx_rf_port_input", phy, api.EncodeU32(mode))
}

func (d *Driver) GetRxRfPortInput(phy noos.Phy, mode *uint32) int32 {
	return d.getU32("ad9361_get_rx_rf_port_input", phy, mode)
}

func (d *Driver) SetTxAttenuation(phy noos.Phy, ch uint8, mdB uint32) int32 {
	return d.invoke("ad9361_set_tx_attenuation", phy, api.EncodeU32(uint32(ch)), api.EncodeU32(mdB))
}

func (d *Driver) GetTxAttenuation(phy noos.Phy, ch uint8, mdB *uint32) int32 {
	return d.getU32("ad9361_get_tx_attenuation", phy, mdB, api.EncodeU32(uint32(ch)))
}

func (d *Driver) SetTxRfBandwidth(phy noos.Phy, hz uint32) int32 {
	return d.invoke("ad9361_set_tx_rf_bandwidth", phy, api.EncodeU32(hz))
}

func (d *Driver) GetTxRfBandwidth(phy noos.Phy, hz *uint32) int32 {
	return d.getU32("ad9361_get_tx_rf_bandwidth", phy, hz)
}

func (d *Driver) SetTxSamplingFreq(phy noos.Phy, hz uint32) int32 {
	return d.invoke("ad9361_set_tx_sampling_freq", phy, api.EncodeU32(hz))
}

func (d *Driver) GetTxSamplingFreq(phy noos.Phy, hz *uint32) int32 {
	return d.getU32("ad9361_get_tx_sampling_freq", phy, hz)
}

func (d *Driver) SetTxLoFreq(phy noos.Phy, hz uint64) int32 {
	return d.invoke("ad9361_set_tx_lo_freq", phy, hz)
}

func (d *Driver) GetTxLoFreq(phy noos.Phy, hz *uint64) int32 {
	return d.getU64("ad9361_get_tx_lo_freq", phy, hz)
}

func (d *Driver) SetTxLoIntExt(phy noos.Phy, intExt uint8) int32 {
	return d.invoke("ad9361_set_tx_lo_int_ext", phy, api.EncodeU32(uint32(intExt)))
}

func (d *Driver) SetTxFirConfig(phy noos.Phy, cfg noos.TxFIRConfig) int32 {
	d.mem.store(d.layout.fir, &cfg)
	return d.invoke("ad9361_set_tx_fir_config", phy, api.EncodeU32(d.layout.fir))
}

func (d *Driver) SetTxFirEnDis(phy noos.Phy, en uint8) int32 {
	return d.invoke("ad9361_set_tx_fir_en_dis", phy, api.EncodeU32(uint32(en)))
}

func (d *Driver) GetTxFirEnDis(phy noos.Phy, en *uint8) int32 {
	return d.getU8("ad9361_get_tx_fir_en_dis", phy, en)
}

func (d *Driver) SetTxRfPortOutput(phy noos.Phy, mode uint32) int32 {
	return d.invoke("ad9361_set_tx_rf_port_output", phy, api.EncodeU32(mode))
}

func (d *Driver) GetTxRfPortOutput(phy noos.Phy, mode *uint32) int32 {
	return d.getU32("ad9361_get_tx_rf_port_output", phy, mode)
}

func (d *Driver) TxLoPowerdown(phy noos.Phy, option uint8) int32 {
	return d.invoke("ad9361_tx_lo_powerdown", phy, api.EncodeU32(uint32(option)))
}

func (d *Driver) GetTxLoPower(phy noos.Phy, option *uint8) int32 {
	return d.getU8("ad9361_get_tx_lo_power", phy, option)
}

func (d *Driver) BistPrbs(phy noos.Phy, mode noos.BistMode) int32 {
	return d.invoke("ad9361_bist_prbs", phy, api.EncodeU32(uint32(mode)))
}

func (d *Driver) GetBistPrbs(phy noos.Phy, mode *noos.BistMode) {
	cell, _ := d.out("ad9361_get_bist_prbs", phy)
	*mode = noos.BistMode(d.mem.u32(cell))
}

func (d *Driver) BistLoopback(phy noos.Phy, mode int32) int32 {
	return d.invoke("ad9361_bist_loopback", phy, api.EncodeI32(mode))
}

func (d *Driver) GetBistLoopback(phy noos.Phy, mode *int32) {
	cell, _ := d.out("ad9361_get_bist_loopback", phy)
	*mode = int32(d.mem.u32(cell))
}

func (d *Driver) BistTone(phy noos.Phy, mode noos.BistMode, freqHz, levelDB, mask uint32) int32 {
	return d.invoke("ad9361_bist_tone", phy,
		api.EncodeU32(uint32(mode)), api.EncodeU32(freqHz), api.EncodeU32(levelDB), api.EncodeU32(mask))
}

func (d *Driver) EnsmGetState(phy noos.Phy) uint8 {
	return uint8(d.invoke("ad9361_ensm_get_state", phy))
}

func (d *Driver) EnsmForceState(phy noos.Phy, state uint8) {
	d.invoke("ad9361_ensm_force_state", phy, api.EncodeU32(uint32(state)))
}

func (d *Driver) GetTemperature(phy noos.Phy, milliC *int32) int32 {
	var v uint32
	rc := d.getU32("ad9361_get_temperature", phy, &v)
	if rc == noos.OK {
		*milliC = int32(v)
	}
	return rc
}

func (d *Driver) TxMute(phy noos.Phy, state uint32) int32 {
	return d.invoke("ad9361_tx_mute", phy, api.EncodeU32(state))
}

// SPIWrite calls the guest's ad9361_spi_write, which takes the phy
// rather than the SPI descriptor.
func (d *Driver) SPIWrite(phy noos.Phy, reg uint32, val uint32) int32 {
	return d.invoke("ad9361_spi_write", phy, api.EncodeU32(reg), api.EncodeU32(val))
}
