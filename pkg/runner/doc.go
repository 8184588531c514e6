/*
Package runner holds the process plumbing shared by the turing front ends.

  - SignalManager: turns SIGINT and SIGTERM into context cancellation so a
    long run or enumeration stops cleanly.
  - SanitizeInput: guards input strings that arrive over the network before
    they reach the machine.
  - TraceLimits: bound the size of a trace returned to a network client.

# Usage

	sm := runner.NewSignalManager(ctx)
	defer sm.Stop()

	input, err := runner.SanitizeInput(body.Input)
	if err != nil {
		return err
	}
	out, err := engine.Run(sm.Context(), input)
*/
package runner
