package catalog

// Optimizations returns the catalog of pass options accepted by mo-optimize.
func Optimizations() *Catalog {
	return New([]Option{
		{"O1", "enable the O1 optimization pass group"},
		{"convert_nchw_to_nhwc", "convert NCHW operators to NHWC assuming an NCHW input model"},
		{"nchw_to_nhwc_input_shape", "convert the input shape of the model (argument for convert_nchw_to_nhwc)"},
		{"nchw_to_nhwc_output_shape", "convert the output shape of the model (argument for convert_nchw_to_nhwc)"},
		{"expand_broadcast_const", "expand broadcastable constant node inputs"},
		{"fold_add_v2", "fold AddV2 op with constant inputs"},
		{"fold_cast", "fold Cast op with constant input"},
		{"fold_dequantize", "fold Dequantize op"},
		{"fold_dwconv", "fold Depthwise Convolution op with constant inputs"},
		{"fold_gather", "fold Gather op"},
		{"fold_sparse_to_dense", "fold SparseToDense op"},
		{"forward_reshape_to_unaryop", "forward Reshape op across unary operators"},
		{"fuse_activation_function", "fuse activation functions into the preceding operator"},
		{"fuse_add_with_fully_connected", "fuse Add op into FullyConnected op"},
		{"fuse_add_with_tconv", "fuse Add op into Transposed Convolution op"},
		{"fuse_batchnorm_with_conv", "fuse BatchNorm op into Convolution op"},
		{"fuse_batchnorm_with_dwconv", "fuse BatchNorm op into Depthwise Convolution op"},
		{"fuse_batchnorm_with_tconv", "fuse BatchNorm op into Transposed Convolution op"},
		{"fuse_bcq", "apply Binary Coded Quantization"},
		{"fuse_instnorm", "fuse ops into InstanceNorm operator"},
		{"fuse_mean_with_mean", "fuse two consecutive Mean ops"},
		{"fuse_preactivation_batchnorm", "fuse pre-activation BatchNorm operators into Convolution op"},
		{"fuse_transpose_with_mean", "fuse Mean with a preceding Transpose under certain conditions"},
		{"make_batchnorm_gamma_positive", "clamp negative BatchNorm gamma to a small positive value; may change execution results"},
		{"remove_fakequant", "remove FakeQuant ops"},
		{"remove_quantdequant", "remove Quantize-Dequantize sequences"},
		{"remove_redundant_quantize", "remove redundant Quantize ops"},
		{"remove_redundant_reshape", "fuse or remove subsequent Reshape ops"},
		{"remove_redundant_transpose", "fuse or remove subsequent Transpose ops"},
		{"remove_unnecessary_reshape", "remove unnecessary Reshape ops"},
		{"remove_unnecessary_slice", "remove unnecessary Slice ops"},
		{"remove_unnecessary_split", "remove unnecessary Split ops"},
		{"remove_unnecessary_strided_slice", "remove unnecessary StridedSlice ops"},
		{"replace_cw_mul_add_with_depthwise_conv", "replace channel-wise Mul/Add with DepthwiseConv2D"},
		{"replace_non_const_fc_with_batch_matmul", "replace FullyConnected with non-const weights with BatchMatMul"},
		{"resolve_customop_add", "convert Custom(Add) op to Add op"},
		{"resolve_customop_batchmatmul", "convert Custom(BatchMatmul) op to BatchMatmul op"},
		{"resolve_customop_matmul", "convert Custom(Matmul) op to Matmul op"},
		{"resolve_customop_max_pool_with_argmax", "convert Custom(MaxPoolWithArgmax) to builtin operators"},
		{"shuffle_weight_to_16x1float32", "convert FullyConnected weights to SHUFFLED16x1FLOAT32 when rows are a multiple of 16"},
		{"substitute_pack_to_reshape", "convert single-input Pack op to Reshape op"},
		{"substitute_padv2_to_pad", "convert certain PadV2 ops to Pad"},
		{"substitute_splitv_to_split", "convert certain SplitV ops to Split"},
		{"substitute_squeeze_to_reshape", "convert certain Squeeze ops to Reshape"},
		{"substitute_strided_slice_to_reshape", "convert certain StridedSlice ops to Reshape"},
		{"substitute_transpose_to_reshape", "convert certain Transpose ops to Reshape"},
		{"transform_min_max_to_relu6", "transform Minimum-Maximum patterns to Relu6 op"},
		{"transform_min_relu_to_relu6", "transform Minimum(6)-Relu patterns to Relu6 op"},
	})
}
