package main

import (
	"fmt"
	"io"
	"text/tabwriter"
)

// reportItems are the status lines printed after init, in order.
var reportItems = []struct {
	label string
	op    string
	args  []string
}{
	{"Temperature", "get_temperature", nil},
	{"ENSM state", "ensm_get_state", nil},
	{"RX LO", "get_rx_lo_freq", nil},
	{"TX LO", "get_tx_lo_freq", nil},
	{"RX bandwidth", "get_rx_rf_bandwidth", nil},
	{"TX bandwidth", "get_tx_rf_bandwidth", nil},
	{"RX sample rate", "get_rx_sampling_freq", nil},
	{"TX sample rate", "get_tx_sampling_freq", nil},
	{"TX1 attenuation", "get_tx_attenuation", []string{"0"}},
	{"TX2 attenuation", "get_tx_attenuation", []string{"1"}},
	{"RX1 gain mode", "get_rx_gain_control_mode", []string{"0"}},
	{"RX port", "get_rx_rf_port_input", nil},
	{"TX port", "get_tx_rf_port_output", nil},
	{"TX LO power", "get_tx_lo_power", nil},
}

// writeReport prints the device status. Failing reads are shown inline.
func writeReport(w io.Writer, s *session) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Bus:\t%s\n", s.bus)
	fmt.Fprintf(tw, "Driver:\t%s\n", s.driver)
	for _, item := range reportItems {
		op, ok := lookupOperation(item.op)
		if !ok {
			return fmt.Errorf("unknown report operation %s", item.op)
		}
		out, err := call(op, s.dev, item.args)
		if err != nil {
			out = "error: " + err.Error()
		}
		fmt.Fprintf(tw, "%s:\t%s\n", item.label, out)
	}
	if s.recorder != nil {
		fmt.Fprintf(tw, "Trace session:\t%s (%d frames)\n", s.recorder.Session(), s.recorder.Count())
	}
	return tw.Flush()
}
