package feedforward

import "bytes"
import "compress/lzw"
import "io"
import "os"

import "github.com/pkg/errors"

// Save writes the weights of every dense layer, output layer first.
func (f *Network[I]) Save(w io.Writer) error {
	return f.top.Save(w)
}

// Load reads weights written by Save. Data left after the input layer is an
// error. On error the previous weights are kept.
func (f *Network[I]) Load(r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return errors.Wrap(err, "feedforward: read weights")
	}
	var backup bytes.Buffer
	if err := f.top.Save(&backup); err != nil {
		return err
	}
	rd := bytes.NewReader(data)
	err = f.top.Load(rd)
	if err == nil && rd.Len() > 0 {
		err = errors.Errorf("feedforward: %d bytes of trailing data", rd.Len())
	}
	if err != nil {
		if rerr := f.top.Load(&backup); rerr != nil {
			panic(rerr.Error())
		}
		return err
	}
	return nil
}

// WriteWeightsToFile writes model weights to a file
func (f *Network[I]) WriteWeightsToFile(name string) error {
	file, err := os.Create(name)
	if err != nil {
		return errors.WithStack(err)
	}
	err = f.Save(file)
	if cerr := file.Close(); err == nil && cerr != nil {
		err = errors.WithStack(cerr)
	}
	return err
}

// ReadWeightsFromFile reads model weights from a file
func (f *Network[I]) ReadWeightsFromFile(name string) error {
	file, err := os.Open(name)
	if err != nil {
		return errors.WithStack(err)
	}
	defer file.Close()
	return f.Load(file)
}

// WriteCompressedWeightsToFile writes model weights to a lzw file
func (f *Network[I]) WriteCompressedWeightsToFile(name string) error {
	file, err := os.Create(name)
	if err != nil {
		return errors.WithStack(err)
	}
	err = f.WriteCompressedWeights(file)
	if cerr := file.Close(); err == nil && cerr != nil {
		err = errors.WithStack(cerr)
	}
	return err
}

// WriteCompressedWeights writes model weights to a writer
func (f *Network[I]) WriteCompressedWeights(w io.Writer) error {
	lw := lzw.NewWriter(w, lzw.LSB, 8)
	if err := f.Save(lw); err != nil {
		lw.Close()
		return err
	}
	return errors.Wrap(lw.Close(), "feedforward: compress weights")
}

// ReadCompressedWeightsFromFile reads model weights from a lzw file
func (f *Network[I]) ReadCompressedWeightsFromFile(name string) error {
	file, err := os.Open(name)
	if err != nil {
		return errors.WithStack(err)
	}
	defer file.Close()
	return f.ReadCompressedWeights(file)
}

// ReadCompressedWeights reads model weights from a reader
func (f *Network[I]) ReadCompressedWeights(r io.Reader) error {
	lr := lzw.NewReader(r, lzw.LSB, 8)
	defer lr.Close()
	return f.Load(lr)
}
